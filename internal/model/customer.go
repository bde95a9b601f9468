// internal/model/customer.go
package model

import "time"

type Customer struct {
	ID            int        `db:"id" json:"id"`
	FirstName     string     `db:"first_name" json:"first_name"`
	LastName      string     `db:"last_name" json:"last_name"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	Address       string     `db:"address" json:"address"`
	City          string     `db:"city" json:"city"`
	State         string     `db:"state" json:"state"`
	Country       string     `db:"country" json:"country"`
	PostalCode    string     `db:"postal_code" json:"postal_code"`
	Active        bool       `db:"active" json:"active"`
	Segment       string     `db:"segment" json:"segment"`
	Tags          string     `db:"tags" json:"tags"`
	TotalSpent    float64    `db:"total_spent" json:"total_spent"`
	OrderCount    int        `db:"order_count" json:"order_count"`
	LastOrderDate *time.Time `db:"last_order_date" json:"last_order_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
