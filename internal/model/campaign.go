// internal/model/campaign.go
package model

import "time"

// Campaign statuses
const (
	StatusDraft     = "DRAFT"
	StatusScheduled = "SCHEDULED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Campaign types
const (
	TypeEmail = "EMAIL"
	TypeSMS   = "SMS"
	TypePush  = "PUSH_NOTIFICATION"
)

type Campaign struct {
	ID                 int        `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Description        string     `db:"description" json:"description"`
	Status             string     `db:"status" json:"status"`
	Type               string     `db:"type" json:"type"`
	MessageTemplate    string     `db:"message_template" json:"message_template"`
	Subject            string     `db:"subject" json:"subject"`
	SegmentRules       string     `db:"segment_rules" json:"segment_rules"`
	ScheduledTime      *time.Time `db:"scheduled_time" json:"scheduled_time,omitempty"`
	StartTime          *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime            *time.Time `db:"end_time" json:"end_time,omitempty"`
	TargetAudienceSize int        `db:"target_audience_size" json:"target_audience_size"`
	DeliveredCount     int        `db:"delivered_count" json:"delivered_count"`
	FailedCount        int        `db:"failed_count" json:"failed_count"`
	OpenedCount        int        `db:"opened_count" json:"opened_count"`
	ClickedCount       int        `db:"clicked_count" json:"clicked_count"`
	CreatedBy          string     `db:"created_by" json:"created_by"`
	Tags               string     `db:"tags" json:"tags"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
