package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/repository"
)

func newMockRepo(t *testing.T) (*repository.CampaignRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &repository.CampaignRepository{DB: db}, mock
}

func sampleRun(logs int) *repository.CampaignRun {
	run := &repository.CampaignRun{
		CampaignID:         7,
		StartTime:          time.Now(),
		TargetAudienceSize: logs,
	}
	for i := 0; i < logs; i++ {
		now := time.Now()
		run.Delivered++
		run.Logs = append(run.Logs, &model.CommunicationLog{
			CampaignID: 7,
			CustomerID: i + 1,
			Status:     model.LogDelivered,
			SentAt:     &now,
			MessageID:  "msg",
			CreatedAt:  now,
		})
	}
	return run
}

func TestRecordRunCommitsEverythingTogether(t *testing.T) {
	repo, mock := newMockRepo(t)
	run := sampleRun(2)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE campaigns`).
		WithArgs(model.StatusRunning, run.StartTime, 2, 2, 0, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep := mock.ExpectPrepare(`INSERT INTO communication_logs`)
	for i := range run.Logs {
		prep.ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i + 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.RecordRun(run))
	assert.Equal(t, 1, run.Logs[0].ID)
	assert.Equal(t, 2, run.Logs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRunRollsBackOnLogFailure(t *testing.T) {
	repo, mock := newMockRepo(t)
	run := sampleRun(1)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE campaigns`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep := mock.ExpectPrepare(`INSERT INTO communication_logs`)
	prep.ExpectQuery().WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.RecordRun(run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert communication log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM campaigns WHERE id=\$1`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(42)
	var notFound *appErrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleUnknownCampaign(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE campaigns SET status=`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Schedule(42, time.Now().Add(time.Hour))
	var notFound *appErrors.ErrCampaignNotFound
	require.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM campaigns WHERE status=\$1`).
		WithArgs(model.StatusDraft).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStatus(model.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
