package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/queue"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

type mockPublisher struct {
	published  []publishedMessage
	publishErr error
}

type publishedMessage struct {
	queue   string
	payload any
}

func (m *mockPublisher) Publish(queueName string, payload any) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, publishedMessage{queue: queueName, payload: payload})
	return nil
}

func TestCreateCustomerPublishesEvent(t *testing.T) {
	bus := &mockPublisher{}
	repo := &mockCustomerRepo{}
	svc := &service.CustomerService{CustomerRepo: repo, Queue: bus}

	event, err := svc.CreateCustomer(&model.Customer{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Active:    true,
	})
	require.NoError(t, err)
	require.Len(t, bus.published, 1)
	assert.Equal(t, queue.CustomerEvents, bus.published[0].queue)
	assert.Equal(t, "Ana", event.FirstName)
	assert.Equal(t, "ana@example.com", event.Email)
}

func TestCreateCustomerRequiresFirstName(t *testing.T) {
	bus := &mockPublisher{}
	svc := &service.CustomerService{CustomerRepo: &mockCustomerRepo{}, Queue: bus}

	_, err := svc.CreateCustomer(&model.Customer{Email: "no-name@example.com"})
	var validation *appErrors.ErrValidation
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, bus.published, "nothing reaches the bus on validation failure")
}

func TestCreateCustomerBusFailure(t *testing.T) {
	bus := &mockPublisher{publishErr: errors.New("broker unreachable")}
	svc := &service.CustomerService{CustomerRepo: &mockCustomerRepo{}, Queue: bus}

	_, err := svc.CreateCustomer(&model.Customer{FirstName: "Ana"})
	assert.Error(t, err)
}

func TestIngestOrderPublishesWithGeneratedNumber(t *testing.T) {
	bus := &mockPublisher{}
	svc := &service.OrderService{Queue: bus}

	event := &model.OrderEvent{
		CustomerID:  5,
		TotalAmount: 42.50,
		Items: []model.OrderItemEvent{
			{ProductID: "p1", ProductName: "Widget", UnitPrice: 42.50, Quantity: 1, TotalPrice: 42.50},
		},
	}
	require.NoError(t, svc.IngestOrder(event))
	require.Len(t, bus.published, 1)
	assert.Equal(t, queue.OrderEvents, bus.published[0].queue)
	assert.NotEmpty(t, event.OrderNumber, "order number defaults to a generated one")
}

func TestIngestOrderKeepsSuppliedNumber(t *testing.T) {
	bus := &mockPublisher{}
	svc := &service.OrderService{Queue: bus}

	event := &model.OrderEvent{CustomerID: 5, OrderNumber: "ORD-77", TotalAmount: 10}
	require.NoError(t, svc.IngestOrder(event))
	assert.Equal(t, "ORD-77", event.OrderNumber)
}

func TestIngestOrderValidation(t *testing.T) {
	svc := &service.OrderService{Queue: &mockPublisher{}}
	var validation *appErrors.ErrValidation

	require.ErrorAs(t, svc.IngestOrder(&model.OrderEvent{TotalAmount: 10}), &validation)
	require.ErrorAs(t, svc.IngestOrder(&model.OrderEvent{CustomerID: 1, TotalAmount: 0}), &validation)
	require.ErrorAs(t, svc.IngestOrder(&model.OrderEvent{
		CustomerID:  1,
		TotalAmount: 10,
		Items:       []model.OrderItemEvent{{UnitPrice: 0, Quantity: 1, TotalPrice: 10}},
	}), &validation)
}
