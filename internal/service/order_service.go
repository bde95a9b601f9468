// internal/service/order_service.go
package service

import (
	"fmt"

	"github.com/google/uuid"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/queue"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

type OrderService struct {
	OrderRepo repository.OrderRepositoryInterface
	Queue     queue.Publisher
}

// IngestOrder validates the event and publishes it to the bus. The
// projector persists the order asynchronously.
func (s *OrderService) IngestOrder(event *model.OrderEvent) error {
	if event.CustomerID == 0 {
		return appErrors.NewValidation("customer_id", "is required")
	}
	if event.TotalAmount <= 0 {
		return appErrors.NewValidation("total_amount", "must be positive")
	}
	for i, item := range event.Items {
		if item.UnitPrice <= 0 {
			return appErrors.NewValidation(fmt.Sprintf("items[%d].unit_price", i), "must be positive")
		}
		if item.Quantity <= 0 {
			return appErrors.NewValidation(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if item.TotalPrice <= 0 {
			return appErrors.NewValidation(fmt.Sprintf("items[%d].total_price", i), "must be positive")
		}
	}
	if event.OrderNumber == "" {
		event.OrderNumber = uuid.NewString()
	}

	return s.Queue.Publish(queue.OrderEvents, event)
}

func (s *OrderService) GetOrder(id int) (*model.Order, error) {
	return s.OrderRepo.GetByID(id)
}

func (s *OrderService) ListOrdersByCustomer(customerID int) ([]model.Order, error) {
	return s.OrderRepo.ListByCustomer(customerID)
}
