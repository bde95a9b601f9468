// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrCustomerNotFound is a sentinel error
type ErrCustomerNotFound struct {
	CustomerID int
}

func (e *ErrCustomerNotFound) Error() string {
	return fmt.Sprintf("customer with ID %d not found", e.CustomerID)
}

func NewCustomerNotFound(id int) error {
	return &ErrCustomerNotFound{CustomerID: id}
}

// ErrOrderNotFound is a sentinel error
type ErrOrderNotFound struct {
	OrderID int
}

func (e *ErrOrderNotFound) Error() string {
	return fmt.Sprintf("order with ID %d not found", e.OrderID)
}

func NewOrderNotFound(id int) error {
	return &ErrOrderNotFound{OrderID: id}
}

// ErrValidation carries a field-level constraint violation surfaced
// as a client error.
type ErrValidation struct {
	Field  string
	Reason string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ErrValidation{Field: field, Reason: reason}
}

// ErrInvalidTransition is returned when a campaign lifecycle action is
// not allowed from the campaign's current status.
type ErrInvalidTransition struct {
	CampaignID int
	From       string
	Action     string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("campaign %d cannot %s from status %s", e.CampaignID, e.Action, e.From)
}

func NewInvalidTransition(id int, from, action string) error {
	return &ErrInvalidTransition{CampaignID: id, From: from, Action: action}
}
