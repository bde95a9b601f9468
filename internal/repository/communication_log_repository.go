package repository

import (
	"database/sql"

	"github.com/Hemannshu/xeno-crm/internal/model"
)

// CommunicationLogRepositoryInterface covers the read side of the log
// table; rows are written through CampaignRepository.RecordRun.
type CommunicationLogRepositoryInterface interface {
	ListByCampaign(campaignID int) ([]model.CommunicationLog, error)
	ListByCustomer(customerID int) ([]model.CommunicationLog, error)
	CountByCampaignAndStatus(campaignID int, status string) (int, error)
	AverageDeliverySeconds(campaignID int) (float64, error)
}

type CommunicationLogRepository struct {
	DB *sql.DB
}

const logColumns = `id, campaign_id, customer_id, status, sent_at,
        delivered_at, opened_at, clicked_at, COALESCE(error_message,''),
        COALESCE(message_id,''), COALESCE(channel,''),
        COALESCE(recipient,''), COALESCE(subject,''),
        COALESCE(message_content,''), created_at`

func (r *CommunicationLogRepository) list(query string, args ...interface{}) ([]model.CommunicationLog, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.CommunicationLog{}
	for rows.Next() {
		var l model.CommunicationLog
		err := rows.Scan(
			&l.ID, &l.CampaignID, &l.CustomerID, &l.Status, &l.SentAt,
			&l.DeliveredAt, &l.OpenedAt, &l.ClickedAt, &l.ErrorMessage,
			&l.MessageID, &l.Channel, &l.Recipient, &l.Subject,
			&l.MessageContent, &l.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *CommunicationLogRepository) ListByCampaign(campaignID int) ([]model.CommunicationLog, error) {
	return r.list(`SELECT `+logColumns+` FROM communication_logs WHERE campaign_id=$1 ORDER BY sent_at DESC`, campaignID)
}

func (r *CommunicationLogRepository) ListByCustomer(customerID int) ([]model.CommunicationLog, error) {
	return r.list(`SELECT `+logColumns+` FROM communication_logs WHERE customer_id=$1 ORDER BY sent_at DESC`, customerID)
}

func (r *CommunicationLogRepository) CountByCampaignAndStatus(campaignID int, status string) (int, error) {
	var count int
	err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM communication_logs WHERE campaign_id=$1 AND status=$2`,
		campaignID, status,
	).Scan(&count)
	return count, err
}

// AverageDeliverySeconds reports the mean latency between sent_at and
// delivered_at over DELIVERED logs for the campaign. Zero when the
// campaign has no delivered logs.
func (r *CommunicationLogRepository) AverageDeliverySeconds(campaignID int) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRow(`
        SELECT AVG(EXTRACT(EPOCH FROM (delivered_at - sent_at)))
        FROM communication_logs
        WHERE campaign_id=$1 AND status=$2
    `, campaignID, model.LogDelivered).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

var _ CommunicationLogRepositoryInterface = (*CommunicationLogRepository)(nil)
