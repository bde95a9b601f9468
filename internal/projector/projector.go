// Package projector consumes bus events and maps each one into a
// persisted entity graph. Consumption is neither idempotent nor
// ordered: a duplicate customer event produces a second customer row.
package projector

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

type Projector struct {
	CustomerRepo repository.CustomerRepositoryInterface
	OrderRepo    repository.OrderRepositoryInterface
}

// HandleCustomerEvent inserts a new customer row for every event. No
// lookup by id or email happens here.
func (p *Projector) HandleCustomerEvent(body []byte) error {
	var event model.CustomerEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal customer event: %w", err)
	}

	log.Printf("📩 customer event received: %s %s <%s>", event.FirstName, event.LastName, event.Email)

	customer := &model.Customer{
		FirstName:  event.FirstName,
		LastName:   event.LastName,
		Email:      event.Email,
		Phone:      event.Phone,
		Address:    event.Address,
		City:       event.City,
		State:      event.State,
		Country:    event.Country,
		PostalCode: event.PostalCode,
		Active:     event.Active,
		Segment:    event.Segment,
		Tags:       event.Tags,
	}
	if err := p.CustomerRepo.Create(customer); err != nil {
		return fmt.Errorf("persist customer: %w", err)
	}
	return nil
}

// HandleOrderEvent resolves the referenced customer and persists the
// order with all its items in one transaction. An event whose customer
// does not exist is dropped with a warning; it is not requeued.
func (p *Projector) HandleOrderEvent(body []byte) error {
	var event model.OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}

	log.Printf("📩 order event received: %s for customer %d", event.OrderNumber, event.CustomerID)

	_, err := p.CustomerRepo.GetByID(event.CustomerID)
	if err != nil {
		var notFound *appErrors.ErrCustomerNotFound
		if errors.As(err, &notFound) {
			log.Printf("⚠️ customer %d not found, dropping order event %s", event.CustomerID, event.OrderNumber)
			return nil
		}
		return fmt.Errorf("look up customer %d: %w", event.CustomerID, err)
	}

	order := &model.Order{
		CustomerID:      event.CustomerID,
		OrderNumber:     event.OrderNumber,
		OrderDate:       event.OrderDate,
		TotalAmount:     event.TotalAmount,
		Status:          event.Status,
		PaymentMethod:   event.PaymentMethod,
		ShippingAddress: event.ShippingAddress,
		ShippingMethod:  event.ShippingMethod,
		ShippedDate:     event.ShippedDate,
		DeliveredDate:   event.DeliveredDate,
		Notes:           event.Notes,
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	for _, item := range event.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			TotalPrice:      item.TotalPrice,
			ProductCategory: item.ProductCategory,
			ProductVariant:  item.ProductVariant,
			Notes:           item.Notes,
		})
	}

	if err := p.OrderRepo.CreateWithItems(order); err != nil {
		return fmt.Errorf("persist order %s: %w", event.OrderNumber, err)
	}
	return nil
}
