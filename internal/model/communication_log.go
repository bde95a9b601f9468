// internal/model/communication_log.go
package model

import "time"

// Communication log statuses
const (
	LogPending   = "PENDING"
	LogSent      = "SENT"
	LogDelivered = "DELIVERED"
	LogFailed    = "FAILED"
	LogOpened    = "OPENED"
	LogClicked   = "CLICKED"
)

// CommunicationLog records one delivery attempt of a campaign message
// to one customer.
type CommunicationLog struct {
	ID             int        `db:"id" json:"id"`
	CampaignID     int        `db:"campaign_id" json:"campaign_id"`
	CustomerID     int        `db:"customer_id" json:"customer_id"`
	Status         string     `db:"status" json:"status"`
	SentAt         *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt    *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	OpenedAt       *time.Time `db:"opened_at" json:"opened_at,omitempty"`
	ClickedAt      *time.Time `db:"clicked_at" json:"clicked_at,omitempty"`
	ErrorMessage   string     `db:"error_message" json:"error_message,omitempty"`
	MessageID      string     `db:"message_id" json:"message_id"`
	Channel        string     `db:"channel" json:"channel"`
	Recipient      string     `db:"recipient" json:"recipient"`
	Subject        string     `db:"subject" json:"subject"`
	MessageContent string     `db:"message_content" json:"message_content"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}
