// internal/model/events.go
package model

import "time"

// CustomerEvent is the bus payload for customer creation. Flat JSON,
// no versioning field.
type CustomerEvent struct {
	ID         int    `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Active     bool   `json:"active"`
	Segment    string `json:"segment"`
	Tags       string `json:"tags"`
}

// OrderEvent is the bus payload for order ingestion.
type OrderEvent struct {
	ID              int              `json:"id,omitempty"`
	CustomerID      int              `json:"customer_id"`
	OrderNumber     string           `json:"order_number"`
	OrderDate       time.Time        `json:"order_date"`
	TotalAmount     float64          `json:"total_amount"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	ShippingAddress string           `json:"shipping_address"`
	ShippingMethod  string           `json:"shipping_method"`
	ShippedDate     *time.Time       `json:"shipped_date,omitempty"`
	DeliveredDate   *time.Time       `json:"delivered_date,omitempty"`
	Items           []OrderItemEvent `json:"items"`
	Notes           string           `json:"notes"`
}

type OrderItemEvent struct {
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
	ProductCategory string  `json:"product_category"`
	ProductVariant  string  `json:"product_variant"`
	Notes           string  `json:"notes"`
}
