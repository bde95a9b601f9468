// cmd/consumer/main.go
//
// The projector worker: consumes customer and order events from
// RabbitMQ and maps each one into the relational store.
package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/Hemannshu/xeno-crm/internal/config"
	"github.com/Hemannshu/xeno-crm/internal/db"
	"github.com/Hemannshu/xeno-crm/internal/metrics"
	"github.com/Hemannshu/xeno-crm/internal/projector"
	"github.com/Hemannshu/xeno-crm/internal/queue"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()
	db.Init()

	bus, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer bus.Close()

	p := &projector.Projector{
		CustomerRepo: &repository.CustomerRepository{DB: db.DB},
		OrderRepo:    &repository.OrderRepository{DB: db.DB},
	}

	if err := bus.Consume(queue.CustomerEvents, instrumented(queue.CustomerEvents, p.HandleCustomerEvent)); err != nil {
		log.Fatal("Failed to consume customer events:", err)
	}
	if err := bus.Consume(queue.OrderEvents, instrumented(queue.OrderEvents, p.HandleOrderEvent)); err != nil {
		log.Fatal("Failed to consume order events:", err)
	}

	// Health and metrics for the worker itself.
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	http.Handle("/metrics", metrics.Handler())

	log.Println("📡 Projector running, waiting for events...")
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}

func instrumented(queueName string, handler func([]byte) error) func([]byte) error {
	return func(body []byte) error {
		if err := handler(body); err != nil {
			metrics.EventConsumed(queueName, "error")
			return err
		}
		metrics.EventConsumed(queueName, "ok")
		return nil
	}
}
