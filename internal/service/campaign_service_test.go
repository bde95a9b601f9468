package service_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/repository"
	"github.com/Hemannshu/xeno-crm/internal/service"
)

// --- Mock repositories ---

type mockCampaignRepo struct {
	campaign      *model.Campaign
	created       *model.Campaign
	recordedRun   *repository.CampaignRun
	recordRunErr  error
	statusUpdates []string
	scheduledAt   *time.Time
	completedAt   *time.Time
	listFn        func(offset, limit int, status, campaignType string) ([]*model.Campaign, int, error)
}

func (m *mockCampaignRepo) Create(c *model.Campaign) error {
	c.ID = 1
	c.CreatedAt = time.Now()
	m.created = c
	return nil
}

func (m *mockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	if m.campaign == nil {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	c := *m.campaign
	return &c, nil
}

func (m *mockCampaignRepo) Update(c *model.Campaign) error                 { return nil }
func (m *mockCampaignRepo) Delete(id int) error                            { return nil }
func (m *mockCampaignRepo) UpdateStatus(campaignID int, status string) error {
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockCampaignRepo) ListCampaigns(offset, limit int, status, campaignType string) ([]*model.Campaign, int, error) {
	if m.listFn != nil {
		return m.listFn(offset, limit, status, campaignType)
	}
	return []*model.Campaign{}, 0, nil
}

func (m *mockCampaignRepo) Schedule(campaignID int, scheduledTime time.Time) error {
	m.scheduledAt = &scheduledTime
	return nil
}

func (m *mockCampaignRepo) Complete(campaignID int, endTime time.Time) error {
	m.completedAt = &endTime
	return nil
}

func (m *mockCampaignRepo) RecordRun(run *repository.CampaignRun) error {
	if m.recordRunErr != nil {
		return m.recordRunErr
	}
	m.recordedRun = run
	return nil
}

func (m *mockCampaignRepo) ListByDateRange(from, to time.Time) ([]*model.Campaign, error) {
	return nil, nil
}
func (m *mockCampaignRepo) TopByAudienceSize(limit int) ([]*model.Campaign, error) { return nil, nil }
func (m *mockCampaignRepo) TopByOpenRate(limit int) ([]*model.Campaign, error)     { return nil, nil }
func (m *mockCampaignRepo) TopByClickRate(limit int) ([]*model.Campaign, error)    { return nil, nil }
func (m *mockCampaignRepo) CountByStatus(status string) (int, error)               { return 0, nil }
func (m *mockCampaignRepo) AverageDeliveredCompleted() (float64, error)            { return 0, nil }

type mockCustomerRepo struct {
	active []model.Customer
}

func (m *mockCustomerRepo) Create(c *model.Customer) error { return nil }
func (m *mockCustomerRepo) GetByID(id int) (*model.Customer, error) {
	return nil, appErrors.NewCustomerNotFound(id)
}
func (m *mockCustomerRepo) ListAll() ([]model.Customer, error) { return m.active, nil }
func (m *mockCustomerRepo) ListByActive(active bool) ([]model.Customer, error) {
	if active {
		return m.active, nil
	}
	return []model.Customer{}, nil
}
func (m *mockCustomerRepo) ListBySegment(segment string) ([]model.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) ListInactiveSince(threshold time.Time) ([]model.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListHighValue(minSpend float64) ([]model.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListFrequent(minOrders int) ([]model.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) Update(c *model.Customer) error                       { return nil }
func (m *mockCustomerRepo) UpdateSegment(id int, segment string) error           { return nil }
func (m *mockCustomerRepo) UpdateTags(id int, tags string) error                 { return nil }
func (m *mockCustomerRepo) Delete(id int) error                                  { return nil }
func (m *mockCustomerRepo) Count() (int, error)                                  { return len(m.active), nil }
func (m *mockCustomerRepo) CountBySegment(segment string) (int, error)           { return 0, nil }
func (m *mockCustomerRepo) AverageSpendBySegment(segment string) (float64, error) {
	return 0, nil
}

type mockLogRepo struct {
	counts map[string]int
	avg    float64
	logs   []model.CommunicationLog
}

func (m *mockLogRepo) ListByCampaign(campaignID int) ([]model.CommunicationLog, error) {
	return m.logs, nil
}
func (m *mockLogRepo) ListByCustomer(customerID int) ([]model.CommunicationLog, error) {
	return nil, nil
}
func (m *mockLogRepo) CountByCampaignAndStatus(campaignID int, status string) (int, error) {
	return m.counts[status], nil
}
func (m *mockLogRepo) AverageDeliverySeconds(campaignID int) (float64, error) { return m.avg, nil }

func newService(campaignRepo *mockCampaignRepo, customerRepo *mockCustomerRepo, logRepo *mockLogRepo) *service.CampaignService {
	if logRepo == nil {
		logRepo = &mockLogRepo{counts: map[string]int{}}
	}
	return &service.CampaignService{
		CampaignRepo: campaignRepo,
		CustomerRepo: customerRepo,
		LogRepo:      logRepo,
		Rand:         rand.New(rand.NewSource(42)),
	}
}

func activeCustomers(n int) []model.Customer {
	customers := make([]model.Customer, n)
	for i := range customers {
		customers[i] = model.Customer{
			ID:     i + 1,
			Email:  fmt.Sprintf("customer%d@example.com", i+1),
			Active: true,
		}
	}
	return customers
}

// --- Tests ---

func TestCreateCampaignForcesDraft(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	campaign := &model.Campaign{
		Name:   "Spring Sale",
		Type:   model.TypeEmail,
		Status: model.StatusRunning, // caller-supplied status is ignored
	}
	require.NoError(t, svc.CreateCampaign(campaign))
	assert.Equal(t, model.StatusDraft, repo.created.Status)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := newService(&mockCampaignRepo{}, &mockCustomerRepo{}, nil)

	err := svc.CreateCampaign(&model.Campaign{Type: model.TypeEmail})
	var validation *appErrors.ErrValidation
	require.ErrorAs(t, err, &validation)

	err = svc.CreateCampaign(&model.Campaign{Name: "x", Type: "CARRIER_PIGEON"})
	require.ErrorAs(t, err, &validation)
}

func TestStartFromDraft(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{
		ID:              7,
		Name:            "Win-back",
		Status:          model.StatusDraft,
		Type:            model.TypeEmail,
		Subject:         "We miss you",
		MessageTemplate: "Come back!",
	}}
	customers := &mockCustomerRepo{active: activeCustomers(25)}
	svc := newService(repo, customers, nil)

	require.NoError(t, svc.Start(7))
	require.NotNil(t, repo.recordedRun)

	run := repo.recordedRun
	assert.Equal(t, 25, run.TargetAudienceSize)
	assert.Len(t, run.Logs, 25, "exactly one communication log per active customer")
	assert.Equal(t, 25, run.Delivered+run.Failed)

	for _, l := range run.Logs {
		assert.Equal(t, 7, l.CampaignID)
		assert.Equal(t, model.TypeEmail, l.Channel)
		assert.Equal(t, "We miss you", l.Subject)
		assert.NotEmpty(t, l.MessageID)
		assert.Contains(t, []string{model.LogDelivered, model.LogFailed}, l.Status)
		if l.Status == model.LogDelivered {
			require.NotNil(t, l.DeliveredAt)
			assert.Equal(t, *l.SentAt, *l.DeliveredAt, "SENT collapses to DELIVERED at the same instant")
		} else {
			assert.Equal(t, "Simulated delivery failure", l.ErrorMessage)
			assert.Nil(t, l.DeliveredAt)
		}
	}
}

func TestStartRecipientIsCustomerEmail(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{
		ID: 1, Name: "C", Status: model.StatusDraft, Type: model.TypeEmail,
	}}
	customers := &mockCustomerRepo{active: []model.Customer{
		{ID: 9, Email: "ana@example.com", Active: true},
	}}
	svc := newService(repo, customers, nil)

	require.NoError(t, svc.Start(1))
	require.Len(t, repo.recordedRun.Logs, 1)
	assert.Equal(t, "ana@example.com", repo.recordedRun.Logs[0].Recipient)
}

func TestStartRejectedFromRunning(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 3, Status: model.StatusRunning}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	err := svc.Start(3)
	var transition *appErrors.ErrInvalidTransition
	require.ErrorAs(t, err, &transition)
	assert.Nil(t, repo.recordedRun)
}

func TestStartRejectedFromCompleted(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 3, Status: model.StatusCompleted}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	var transition *appErrors.ErrInvalidTransition
	require.ErrorAs(t, svc.Start(3), &transition)
}

func TestStartMarksFailedWhenRunNotRecorded(t *testing.T) {
	repo := &mockCampaignRepo{
		campaign:     &model.Campaign{ID: 4, Status: model.StatusDraft, Type: model.TypeSMS},
		recordRunErr: errors.New("db down"),
	}
	svc := newService(repo, &mockCustomerRepo{active: activeCustomers(3)}, nil)

	err := svc.Start(4)
	require.Error(t, err)
	assert.Contains(t, repo.statusUpdates, model.StatusFailed)
}

func TestScheduleFromDraft(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 2, Status: model.StatusDraft}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	when := time.Now().Add(48 * time.Hour)
	require.NoError(t, svc.Schedule(2, when))
	require.NotNil(t, repo.scheduledAt)
	assert.True(t, repo.scheduledAt.Equal(when))
}

func TestScheduleRejectedFromRunning(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 2, Status: model.StatusRunning}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	var transition *appErrors.ErrInvalidTransition
	require.ErrorAs(t, svc.Schedule(2, time.Now().Add(time.Hour)), &transition)
}

func TestScheduleRejectsPastTime(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 2, Status: model.StatusDraft}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	var validation *appErrors.ErrValidation
	require.ErrorAs(t, svc.Schedule(2, time.Now().Add(-time.Minute)), &validation)
}

func TestCompleteStampsEndTime(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 5, Status: model.StatusRunning}}
	svc := newService(repo, &mockCustomerRepo{}, nil)

	require.NoError(t, svc.Complete(5))
	assert.NotNil(t, repo.completedAt)
}

func TestDeliveryDistribution(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{
		ID: 1, Name: "Big", Status: model.StatusDraft, Type: model.TypeEmail,
	}}
	const n = 10000
	svc := newService(repo, &mockCustomerRepo{active: activeCustomers(n)}, nil)

	require.NoError(t, svc.Start(1))
	run := repo.recordedRun
	require.NotNil(t, run)

	fraction := float64(run.Delivered) / float64(n)
	assert.InDelta(t, 0.9, fraction, 0.02, "delivered fraction converges to 0.9")
	assert.Equal(t, n, run.Delivered+run.Failed)
}

func TestDeliveryDistributionIsReproducible(t *testing.T) {
	outcomes := func() (int, int) {
		repo := &mockCampaignRepo{campaign: &model.Campaign{
			ID: 1, Name: "R", Status: model.StatusDraft, Type: model.TypeSMS,
		}}
		svc := newService(repo, &mockCustomerRepo{active: activeCustomers(500)}, nil)
		if err := svc.Start(1); err != nil {
			t.Fatal(err)
		}
		return repo.recordedRun.Delivered, repo.recordedRun.Failed
	}

	d1, f1 := outcomes()
	d2, f2 := outcomes()
	assert.Equal(t, d1, d2, "same seed, same outcomes")
	assert.Equal(t, f1, f2)
}

func TestStatsRatesZeroWhenNothingDelivered(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 1, Name: "Empty"}}
	logs := &mockLogRepo{counts: map[string]int{}}
	svc := newService(repo, &mockCustomerRepo{}, logs)

	stats, err := svc.Stats(1)
	require.NoError(t, err)
	assert.Zero(t, stats.OpenRate)
	assert.Zero(t, stats.ClickRate)
	assert.Zero(t, stats.DeliveredCount)
}

func TestStatsRates(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 1, Name: "Active", TargetAudienceSize: 100}}
	logs := &mockLogRepo{
		counts: map[string]int{
			model.LogDelivered: 80,
			model.LogFailed:    20,
			model.LogOpened:    40,
			model.LogClicked:   10,
		},
		avg: 1.5,
	}
	svc := newService(repo, &mockCustomerRepo{}, logs)

	stats, err := svc.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 80, stats.DeliveredCount)
	assert.Equal(t, 20, stats.FailedCount)
	assert.InDelta(t, 0.5, stats.OpenRate, 1e-9)
	assert.InDelta(t, 0.125, stats.ClickRate, 1e-9)
	assert.InDelta(t, 1.5, stats.AverageDeliverySeconds, 1e-9)
	assert.Equal(t, 100, stats.TargetAudienceSize)
}

func TestLogsReturnsCommunicationHistory(t *testing.T) {
	repo := &mockCampaignRepo{campaign: &model.Campaign{ID: 1, Name: "H"}}
	logs := &mockLogRepo{
		counts: map[string]int{},
		logs: []model.CommunicationLog{
			{ID: 1, CampaignID: 1, CustomerID: 3, Status: model.LogDelivered},
			{ID: 2, CampaignID: 1, CustomerID: 4, Status: model.LogFailed},
		},
	}
	svc := newService(repo, &mockCustomerRepo{}, logs)

	history, err := svc.Logs(1)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestLogsCampaignNotFound(t *testing.T) {
	svc := newService(&mockCampaignRepo{}, &mockCustomerRepo{}, nil)

	_, err := svc.Logs(12)
	var notFound *appErrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestStatsCampaignNotFound(t *testing.T) {
	svc := newService(&mockCampaignRepo{}, &mockCustomerRepo{}, nil)

	_, err := svc.Stats(99)
	var notFound *appErrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
}
