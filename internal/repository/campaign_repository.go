package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
)

type CampaignRepositoryInterface interface {
	// Campaign CRUD
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	Update(c *model.Campaign) error
	UpdateStatus(campaignID int, status string) error
	Delete(id int) error
	ListCampaigns(offset, limit int, status, campaignType string) ([]*model.Campaign, int, error)

	// Lifecycle
	Schedule(campaignID int, scheduledTime time.Time) error
	Complete(campaignID int, endTime time.Time) error
	RecordRun(run *CampaignRun) error

	// Reporting
	ListByDateRange(from, to time.Time) ([]*model.Campaign, error)
	TopByAudienceSize(limit int) ([]*model.Campaign, error)
	TopByOpenRate(limit int) ([]*model.Campaign, error)
	TopByClickRate(limit int) ([]*model.Campaign, error)
	CountByStatus(status string) (int, error)
	AverageDeliveredCompleted() (float64, error)
}

// CampaignRun is the full outcome of one campaign start: the audience
// size, counter increments and every communication log row, persisted
// together in a single transaction.
type CampaignRun struct {
	CampaignID         int
	StartTime          time.Time
	TargetAudienceSize int
	Delivered          int
	Failed             int
	Logs               []*model.CommunicationLog
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, COALESCE(description,''), status, type,
        COALESCE(message_template,''), COALESCE(subject,''),
        COALESCE(segment_rules,''), scheduled_time, start_time, end_time,
        target_audience_size, delivered_count, failed_count, opened_count,
        clicked_count, COALESCE(created_by,''), COALESCE(tags,''),
        created_at, updated_at`

func scanCampaign(row interface{ Scan(...interface{}) error }) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &c.Type,
		&c.MessageTemplate, &c.Subject, &c.SegmentRules,
		&c.ScheduledTime, &c.StartTime, &c.EndTime,
		&c.TargetAudienceSize, &c.DeliveredCount, &c.FailedCount,
		&c.OpenedCount, &c.ClickedCount, &c.CreatedBy, &c.Tags,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = model.StatusDraft
	}
	query := `
        INSERT INTO campaigns
        (name, description, status, type, message_template, subject,
         segment_rules, scheduled_time, created_by, tags, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.Name, c.Description, c.Status, c.Type, c.MessageTemplate,
		c.Subject, c.SegmentRules, c.ScheduledTime, c.CreatedBy, c.Tags,
		c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	c, err := scanCampaign(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, description=$2, type=$3, message_template=$4,
            subject=$5, segment_rules=$6, scheduled_time=$7, tags=$8,
            updated_at=NOW()
        WHERE id=$9
    `
	res, err := r.DB.Exec(query,
		c.Name, c.Description, c.Type, c.MessageTemplate, c.Subject,
		c.SegmentRules, c.ScheduledTime, c.Tags, c.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCampaignNotFound(c.ID)
	}
	return nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

// Delete removes the campaign; communication logs cascade via FK.
func (r *CampaignRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status, campaignType string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if campaignType != "" {
		query += fmt.Sprintf(" AND type=$%d", argPos)
		args = append(args, campaignType)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	argPosCount := 1
	if status != "" {
		countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
		argsCount = append(argsCount, status)
		argPosCount++
	}
	if campaignType != "" {
		countQuery += fmt.Sprintf(" AND type=$%d", argPosCount)
		argsCount = append(argsCount, campaignType)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ====================== Lifecycle ======================

func (r *CampaignRepository) Schedule(campaignID int, scheduledTime time.Time) error {
	query := `UPDATE campaigns SET status=$1, scheduled_time=$2, updated_at=NOW() WHERE id=$3`
	res, err := r.DB.Exec(query, model.StatusScheduled, scheduledTime, campaignID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	return nil
}

func (r *CampaignRepository) Complete(campaignID int, endTime time.Time) error {
	query := `UPDATE campaigns SET status=$1, end_time=$2, updated_at=NOW() WHERE id=$3`
	res, err := r.DB.Exec(query, model.StatusCompleted, endTime, campaignID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	return nil
}

// RecordRun persists one whole campaign run atomically: the RUNNING
// status, start time, audience size, counter increments and all
// communication logs. Counters are incremented, never recomputed, so a
// retried run cannot silently halve them.
func (r *CampaignRepository) RecordRun(run *CampaignRun) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        UPDATE campaigns
        SET status=$1, start_time=$2, target_audience_size=$3,
            delivered_count=delivered_count+$4,
            failed_count=failed_count+$5,
            updated_at=NOW()
        WHERE id=$6
    `, model.StatusRunning, run.StartTime, run.TargetAudienceSize,
		run.Delivered, run.Failed, run.CampaignID)
	if err != nil {
		return fmt.Errorf("update campaign run: %w", err)
	}

	stmt, err := tx.Prepare(`
        INSERT INTO communication_logs
        (campaign_id, customer_id, status, sent_at, delivered_at,
         error_message, message_id, channel, recipient, subject,
         message_content, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `)
	if err != nil {
		return fmt.Errorf("prepare log insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range run.Logs {
		err = stmt.QueryRow(
			l.CampaignID, l.CustomerID, l.Status, l.SentAt, l.DeliveredAt,
			l.ErrorMessage, l.MessageID, l.Channel, l.Recipient, l.Subject,
			l.MessageContent, l.CreatedAt,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("insert communication log: %w", err)
		}
	}

	return tx.Commit()
}

// ====================== Reporting ======================

func (r *CampaignRepository) queryCampaigns(query string, args ...interface{}) ([]*model.Campaign, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) ListByDateRange(from, to time.Time) ([]*model.Campaign, error) {
	return r.queryCampaigns(
		`SELECT `+campaignColumns+` FROM campaigns WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at`,
		from, to,
	)
}

func (r *CampaignRepository) TopByAudienceSize(limit int) ([]*model.Campaign, error) {
	return r.queryCampaigns(
		`SELECT `+campaignColumns+` FROM campaigns WHERE target_audience_size > 0 ORDER BY target_audience_size DESC LIMIT $1`,
		limit,
	)
}

func (r *CampaignRepository) TopByOpenRate(limit int) ([]*model.Campaign, error) {
	return r.queryCampaigns(
		`SELECT `+campaignColumns+` FROM campaigns WHERE delivered_count > 0 ORDER BY (opened_count::float / delivered_count) DESC LIMIT $1`,
		limit,
	)
}

func (r *CampaignRepository) TopByClickRate(limit int) ([]*model.Campaign, error) {
	return r.queryCampaigns(
		`SELECT `+campaignColumns+` FROM campaigns WHERE delivered_count > 0 ORDER BY (clicked_count::float / delivered_count) DESC LIMIT $1`,
		limit,
	)
}

func (r *CampaignRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM campaigns WHERE status=$1`, status).Scan(&count)
	return count, err
}

func (r *CampaignRepository) AverageDeliveredCompleted() (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRow(
		`SELECT AVG(delivered_count) FROM campaigns WHERE status=$1`, model.StatusCompleted,
	).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
