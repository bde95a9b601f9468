// internal/service/customer_service.go
package service

import (
	"time"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/queue"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	LogRepo      repository.CommunicationLogRepositoryInterface
	Queue        queue.Publisher
}

// CreateCustomer publishes a customer event to the bus instead of
// saving directly; the projector persists it asynchronously.
func (s *CustomerService) CreateCustomer(c *model.Customer) (*model.CustomerEvent, error) {
	if c.FirstName == "" {
		return nil, appErrors.NewValidation("first_name", "must not be blank")
	}

	event := &model.CustomerEvent{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		Country:    c.Country,
		PostalCode: c.PostalCode,
		Active:     c.Active,
		Segment:    c.Segment,
		Tags:       c.Tags,
	}
	if err := s.Queue.Publish(queue.CustomerEvents, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CustomerService) GetCustomer(id int) (*model.Customer, error) {
	return s.CustomerRepo.GetByID(id)
}

func (s *CustomerService) ListCustomers() ([]model.Customer, error) {
	return s.CustomerRepo.ListAll()
}

// UpdateCustomer overwrites the customer's fields directly; there is
// no merge or versioning.
func (s *CustomerService) UpdateCustomer(id int, details *model.Customer) (*model.Customer, error) {
	customer, err := s.CustomerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	customer.FirstName = details.FirstName
	customer.LastName = details.LastName
	customer.Email = details.Email
	customer.Phone = details.Phone
	customer.Address = details.Address
	customer.City = details.City
	customer.State = details.State
	customer.Country = details.Country
	customer.PostalCode = details.PostalCode
	customer.Active = details.Active
	customer.Segment = details.Segment
	customer.Tags = details.Tags

	if err := s.CustomerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(id int) error {
	if _, err := s.CustomerRepo.GetByID(id); err != nil {
		return err
	}
	return s.CustomerRepo.Delete(id)
}

func (s *CustomerService) GetCustomersBySegment(segment string) ([]model.Customer, error) {
	return s.CustomerRepo.ListBySegment(segment)
}

// GetInactiveCustomers returns customers whose last order is older
// than the given number of months.
func (s *CustomerService) GetInactiveCustomers(monthsThreshold int) ([]model.Customer, error) {
	threshold := time.Now().AddDate(0, -monthsThreshold, 0)
	return s.CustomerRepo.ListInactiveSince(threshold)
}

func (s *CustomerService) GetHighValueCustomers(minSpend float64) ([]model.Customer, error) {
	return s.CustomerRepo.ListHighValue(minSpend)
}

func (s *CustomerService) GetFrequentCustomers(minOrders int) ([]model.Customer, error) {
	return s.CustomerRepo.ListFrequent(minOrders)
}

func (s *CustomerService) UpdateCustomerSegment(id int, segment string) error {
	return s.CustomerRepo.UpdateSegment(id, segment)
}

func (s *CustomerService) UpdateCustomerTags(id int, tags string) error {
	return s.CustomerRepo.UpdateTags(id, tags)
}

// GetCommunicationHistory returns every campaign message sent to the
// customer.
func (s *CustomerService) GetCommunicationHistory(id int) ([]model.CommunicationLog, error) {
	if _, err := s.CustomerRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.LogRepo.ListByCustomer(id)
}

// GetCustomerStats aggregates headline customer numbers.
func (s *CustomerService) GetCustomerStats() (map[string]interface{}, error) {
	total, err := s.CustomerRepo.Count()
	if err != nil {
		return nil, err
	}
	active, err := s.CustomerRepo.ListByActive(true)
	if err != nil {
		return nil, err
	}
	highValue, err := s.CustomerRepo.ListHighValue(10000.0)
	if err != nil {
		return nil, err
	}
	avgSpend, err := s.CustomerRepo.AverageSpendBySegment("ACTIVE")
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total_customers":      total,
		"active_customers":     len(active),
		"high_value_customers": len(highValue),
		"average_spend":        avgSpend,
	}, nil
}
