// internal/model/order.go
package model

import "time"

type Order struct {
	ID              int         `db:"id" json:"id"`
	CustomerID      int         `db:"customer_id" json:"customer_id"`
	OrderNumber     string      `db:"order_number" json:"order_number"`
	OrderDate       time.Time   `db:"order_date" json:"order_date"`
	TotalAmount     float64     `db:"total_amount" json:"total_amount"`
	Status          string      `db:"status" json:"status"`
	PaymentMethod   string      `db:"payment_method" json:"payment_method"`
	ShippingAddress string      `db:"shipping_address" json:"shipping_address"`
	ShippingMethod  string      `db:"shipping_method" json:"shipping_method"`
	ShippedDate     *time.Time  `db:"shipped_date" json:"shipped_date,omitempty"`
	DeliveredDate   *time.Time  `db:"delivered_date" json:"delivered_date,omitempty"`
	Notes           string      `db:"notes" json:"notes"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time  `db:"updated_at" json:"updated_at,omitempty"`
}

type OrderItem struct {
	ID              int     `db:"id" json:"id"`
	OrderID         int     `db:"order_id" json:"order_id"`
	ProductID       string  `db:"product_id" json:"product_id"`
	ProductName     string  `db:"product_name" json:"product_name"`
	UnitPrice       float64 `db:"unit_price" json:"unit_price"`
	Quantity        int     `db:"quantity" json:"quantity"`
	TotalPrice      float64 `db:"total_price" json:"total_price"`
	ProductCategory string  `db:"product_category" json:"product_category"`
	ProductVariant  string  `db:"product_variant" json:"product_variant"`
	Notes           string  `db:"notes" json:"notes"`
}
