// internal/service/campaign_service.go
package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

// Probability that a simulated delivery succeeds.
const deliverySuccessRate = 0.9

// CampaignService owns the campaign lifecycle:
// DRAFT → SCHEDULED → RUNNING → COMPLETED, with FAILED reached when a
// run cannot be persisted.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	CustomerRepo repository.CustomerRepositoryInterface
	LogRepo      repository.CommunicationLogRepositoryInterface

	// Rand drives the delivery simulation. Seeded explicitly so runs
	// are reproducible in tests.
	Rand *rand.Rand
	mu   sync.Mutex
}

// CampaignStats recounts delivery outcomes from the log table, which
// can disagree with the campaign's own stored counters.
type CampaignStats struct {
	CampaignID             int     `json:"campaign_id"`
	CampaignName           string  `json:"campaign_name"`
	TargetAudienceSize     int     `json:"target_audience_size"`
	DeliveredCount         int     `json:"delivered_count"`
	FailedCount            int     `json:"failed_count"`
	OpenedCount            int     `json:"opened_count"`
	ClickedCount           int     `json:"clicked_count"`
	OpenRate               float64 `json:"open_rate"`
	ClickRate              float64 `json:"click_rate"`
	AverageDeliverySeconds float64 `json:"average_delivery_seconds"`
}

func validCampaignType(t string) bool {
	switch t {
	case model.TypeEmail, model.TypeSMS, model.TypePush:
		return true
	}
	return false
}

// CreateCampaign persists a new campaign, forcing status DRAFT
// regardless of what the caller supplied.
func (s *CampaignService) CreateCampaign(c *model.Campaign) error {
	if c.Name == "" {
		return appErrors.NewValidation("name", "must not be blank")
	}
	if !validCampaignType(c.Type) {
		return appErrors.NewValidation("type", fmt.Sprintf("unknown campaign type %q", c.Type))
	}
	c.Status = model.StatusDraft
	return s.CampaignRepo.Create(c)
}

func (s *CampaignService) GetCampaign(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status, campaignType string) ([]model.Campaign, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status, campaignType)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// UpdateCampaign overwrites the campaign's editable fields. Status and
// counters are untouched; those only move through lifecycle actions.
func (s *CampaignService) UpdateCampaign(id int, details *model.Campaign) (*model.Campaign, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	campaign.Name = details.Name
	campaign.Description = details.Description
	campaign.Type = details.Type
	campaign.MessageTemplate = details.MessageTemplate
	campaign.Subject = details.Subject
	campaign.SegmentRules = details.SegmentRules
	campaign.ScheduledTime = details.ScheduledTime
	campaign.Tags = details.Tags

	if campaign.Name == "" {
		return nil, appErrors.NewValidation("name", "must not be blank")
	}
	if !validCampaignType(campaign.Type) {
		return nil, appErrors.NewValidation("type", fmt.Sprintf("unknown campaign type %q", campaign.Type))
	}

	if err := s.CampaignRepo.Update(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *CampaignService) DeleteCampaign(id int) error {
	if _, err := s.CampaignRepo.GetByID(id); err != nil {
		return err
	}
	return s.CampaignRepo.Delete(id)
}

// Schedule moves the campaign to SCHEDULED with a future send time.
// Only DRAFT or already-SCHEDULED campaigns may be scheduled.
func (s *CampaignService) Schedule(id int, scheduledTime time.Time) error {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign.Status != model.StatusDraft && campaign.Status != model.StatusScheduled {
		return appErrors.NewInvalidTransition(id, campaign.Status, "schedule")
	}
	if !scheduledTime.After(time.Now()) {
		return appErrors.NewValidation("scheduled_time", "must be in the future")
	}
	return s.CampaignRepo.Schedule(id, scheduledTime)
}

// Start resolves the target audience, simulates every delivery in
// memory and persists the whole run in a single transaction. The
// campaign ends up RUNNING with exactly one communication log per
// active customer, or FAILED if the run could not be recorded.
func (s *CampaignService) Start(id int) error {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return err
	}
	if campaign.Status != model.StatusDraft && campaign.Status != model.StatusScheduled {
		return appErrors.NewInvalidTransition(id, campaign.Status, "start")
	}

	// Segment rules are declared but not evaluated yet; the audience
	// is every active customer.
	audience, err := s.CustomerRepo.ListByActive(true)
	if err != nil {
		return err
	}

	run := &repository.CampaignRun{
		CampaignID:         id,
		StartTime:          time.Now(),
		TargetAudienceSize: len(audience),
	}

	s.mu.Lock()
	for i := range audience {
		log, delivered := s.simulateDelivery(campaign, &audience[i])
		if delivered {
			run.Delivered++
		} else {
			run.Failed++
		}
		run.Logs = append(run.Logs, log)
	}
	s.mu.Unlock()

	if err := s.CampaignRepo.RecordRun(run); err != nil {
		// The run transaction rolled back; nothing was sent. Mark the
		// campaign FAILED so the state is visible.
		if stErr := s.CampaignRepo.UpdateStatus(id, model.StatusFailed); stErr != nil {
			return fmt.Errorf("record run: %v (mark failed: %w)", err, stErr)
		}
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// simulateDelivery draws one uniform success decision and builds the
// communication log for it. Success collapses SENT→DELIVERED with
// sent_at and delivered_at stamped at the same instant.
func (s *CampaignService) simulateDelivery(campaign *model.Campaign, customer *model.Customer) (*model.CommunicationLog, bool) {
	now := time.Now()
	delivered := s.Rand.Float64() < deliverySuccessRate

	log := &model.CommunicationLog{
		CampaignID:     campaign.ID,
		CustomerID:     customer.ID,
		SentAt:         &now,
		MessageID:      uuid.NewString(),
		Channel:        campaign.Type,
		Recipient:      customer.Email,
		Subject:        campaign.Subject,
		MessageContent: campaign.MessageTemplate,
		CreatedAt:      now,
	}
	if delivered {
		log.Status = model.LogDelivered
		log.DeliveredAt = &now
	} else {
		log.Status = model.LogFailed
		log.ErrorMessage = "Simulated delivery failure"
	}
	return log, delivered
}

// Complete stamps the end time. It does not verify that all deliveries
// finished.
func (s *CampaignService) Complete(id int) error {
	if _, err := s.CampaignRepo.GetByID(id); err != nil {
		return err
	}
	return s.CampaignRepo.Complete(id, time.Now())
}

// Stats recomputes delivery outcomes by counting communication logs
// per status, independent of the campaign's stored counters.
func (s *CampaignService) Stats(id int) (*CampaignStats, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	delivered, err := s.LogRepo.CountByCampaignAndStatus(id, model.LogDelivered)
	if err != nil {
		return nil, err
	}
	failed, err := s.LogRepo.CountByCampaignAndStatus(id, model.LogFailed)
	if err != nil {
		return nil, err
	}
	opened, err := s.LogRepo.CountByCampaignAndStatus(id, model.LogOpened)
	if err != nil {
		return nil, err
	}
	clicked, err := s.LogRepo.CountByCampaignAndStatus(id, model.LogClicked)
	if err != nil {
		return nil, err
	}
	avgDelivery, err := s.LogRepo.AverageDeliverySeconds(id)
	if err != nil {
		return nil, err
	}

	return &CampaignStats{
		CampaignID:             id,
		CampaignName:           campaign.Name,
		TargetAudienceSize:     campaign.TargetAudienceSize,
		DeliveredCount:         delivered,
		FailedCount:            failed,
		OpenedCount:            opened,
		ClickedCount:           clicked,
		OpenRate:               calculateRate(opened, delivered),
		ClickRate:              calculateRate(clicked, delivered),
		AverageDeliverySeconds: avgDelivery,
	}, nil
}

// Logs returns the campaign's full communication history.
func (s *CampaignService) Logs(id int) ([]model.CommunicationLog, error) {
	if _, err := s.CampaignRepo.GetByID(id); err != nil {
		return nil, err
	}
	return s.LogRepo.ListByCampaign(id)
}

// TopCampaigns ranks campaigns by audience size, open rate or click
// rate. Rates rank on the stored counters, not the log table.
func (s *CampaignService) TopCampaigns(by string, limit int) ([]*model.Campaign, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	switch by {
	case "audience":
		return s.CampaignRepo.TopByAudienceSize(limit)
	case "open_rate":
		return s.CampaignRepo.TopByOpenRate(limit)
	case "click_rate":
		return s.CampaignRepo.TopByClickRate(limit)
	}
	return nil, appErrors.NewValidation("by", fmt.Sprintf("unknown ranking %q", by))
}

func (s *CampaignService) CampaignsByDateRange(from, to time.Time) ([]*model.Campaign, error) {
	return s.CampaignRepo.ListByDateRange(from, to)
}

// Summary reports campaign counts per status plus the average
// delivered count over completed campaigns.
func (s *CampaignService) Summary() (map[string]interface{}, error) {
	byStatus := map[string]int{}
	for _, status := range []string{
		model.StatusDraft, model.StatusScheduled, model.StatusRunning,
		model.StatusCompleted, model.StatusFailed,
	} {
		count, err := s.CampaignRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}
	avgDelivered, err := s.CampaignRepo.AverageDeliveredCompleted()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"by_status":               byStatus,
		"average_delivered_count": avgDelivered,
	}, nil
}

func calculateRate(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total)
}
