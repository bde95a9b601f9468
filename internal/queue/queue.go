package queue

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

// Queue names carried over from the event schema: one durable queue per
// event type.
const (
	CustomerEvents = "customer-events"
	OrderEvents    = "order-events"
)

// Publisher is what the API services need to emit events.
type Publisher interface {
	Publish(queueName string, payload any) error
}

// RabbitMQ wraps one connection and channel.
type RabbitMQ struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &RabbitMQ{conn: conn, ch: ch}, nil
}

func (q *RabbitMQ) Close() {
	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

// Publish declares the durable queue and sends the payload as JSON.
func (q *RabbitMQ) Publish(queueName string, payload any) error {
	queue, err := q.ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Consume runs the handler for every delivery on the queue. Handler
// errors drop the message with a log line; there is no dead-letter
// queue.
func (q *RabbitMQ) Consume(queueName string, handler func(body []byte) error) error {
	queue, err := q.ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				log.Printf("⚠️ dropping message on %s: %v", queueName, err)
			}
			d.Ack(false)
		}
	}()

	return nil
}

var _ Publisher = (*RabbitMQ)(nil)
