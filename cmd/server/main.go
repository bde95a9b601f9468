// cmd/server/main.go
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Hemannshu/xeno-crm/internal/auth"
	"github.com/Hemannshu/xeno-crm/internal/config"
	"github.com/Hemannshu/xeno-crm/internal/controller"
	"github.com/Hemannshu/xeno-crm/internal/db"
	"github.com/Hemannshu/xeno-crm/internal/metrics"
	"github.com/Hemannshu/xeno-crm/internal/queue"
	"github.com/Hemannshu/xeno-crm/internal/repository"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	// Init DB
	db.Init()

	// Connect to RabbitMQ
	bus, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer bus.Close()

	customerRepo := &repository.CustomerRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	orderRepo := &repository.OrderRepository{DB: db.DB}
	logRepo := &repository.CommunicationLogRepository{DB: db.DB}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		CustomerRepo: customerRepo,
		LogRepo:      logRepo,
		Rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		LogRepo:      logRepo,
		Queue:        bus,
	}
	orderService := &service.OrderService{
		OrderRepo: orderRepo,
		Queue:     bus,
	}
	aiService := service.NewAIService()

	campaignController := &controller.CampaignController{
		CampaignService: campaignService,
		AIService:       aiService,
	}
	customerController := &controller.CustomerController{CustomerService: customerService}
	orderController := &controller.OrderController{OrderService: orderService}
	aiController := &controller.AIController{AIService: aiService}

	authManager := auth.NewManager(cfg)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(metrics.Middleware)

	// Auth flow
	r.Get("/auth/login", authManager.HandleLogin)
	r.Get("/auth/callback", authManager.HandleCallback)
	r.Post("/auth/logout", authManager.HandleLogout)

	// AI endpoints are intentionally open
	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/segment-rules", aiController.GenerateSegmentRules)
		r.Post("/message-variants", aiController.GenerateMessageVariants)
		r.Get("/optimal-time", aiController.GetOptimalSendTime)
		r.Get("/recommended-images", aiController.GetRecommendedImages)
	})

	// Everything else requires a session
	r.Group(func(r chi.Router) {
		r.Use(authManager.RequireSession)

		r.Route("/api/customers", func(r chi.Router) {
			r.Post("/", customerController.CreateCustomer)
			r.Get("/", customerController.ListCustomers)
			r.Get("/stats", customerController.GetCustomerStats)
			r.Get("/inactive", customerController.GetInactiveCustomers)
			r.Get("/high-value", customerController.GetHighValueCustomers)
			r.Get("/frequent", customerController.GetFrequentCustomers)
			r.Get("/segment/{segment}", customerController.GetCustomersBySegment)
			r.Get("/{id}", customerController.GetCustomer)
			r.Put("/{id}", customerController.UpdateCustomer)
			r.Delete("/{id}", customerController.DeleteCustomer)
			r.Patch("/{id}/segment", customerController.UpdateCustomerSegment)
			r.Patch("/{id}/tags", customerController.UpdateCustomerTags)
			r.Get("/{id}/communication-logs", customerController.GetCommunicationHistory)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Post("/", orderController.IngestOrder)
			r.Get("/", orderController.ListOrders)
			r.Get("/{id}", orderController.GetOrder)
		})

		r.Route("/api/campaigns", func(r chi.Router) {
			r.Post("/", campaignController.CreateCampaign)
			r.Get("/", campaignController.ListCampaigns)
			r.Get("/top", campaignController.TopCampaigns)
			r.Get("/summary", campaignController.CampaignSummary)
			r.Get("/{id}", campaignController.GetCampaign)
			r.Put("/{id}", campaignController.UpdateCampaign)
			r.Delete("/{id}", campaignController.DeleteCampaign)
			r.Post("/{id}/schedule", campaignController.ScheduleCampaign)
			r.Post("/{id}/start", campaignController.StartCampaign)
			r.Post("/{id}/complete", campaignController.CompleteCampaign)
			r.Get("/{id}/stats", campaignController.GetCampaignStats)
			r.Get("/{id}/logs", campaignController.GetCampaignLogs)
			r.Get("/{id}/insights", campaignController.GetCampaignInsights)
			r.Get("/{id}/message-variants", campaignController.GetMessageVariants)
			r.Get("/{id}/optimal-time", campaignController.GetOptimalSendTime)
			r.Get("/{id}/recommended-images", campaignController.GetRecommendedImages)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Println("🚀 Server running on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed:", err)
		}
	}()

	// Graceful shutdown on interrupt
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Println("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown failed:", err)
	}
	log.Println("server shutdown complete")
}
