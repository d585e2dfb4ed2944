package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"openhouse/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestDeliveryLogRepository_Create(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 13, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rec     *domain.DeliveryRecord
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "sent",
			rec: &domain.DeliveryRecord{
				EventID:   "EVT-1",
				EmailID:   "EVT-1-MSG-1",
				Recipient: "bob@example.com",
				Subject:   "Thanks",
				Status:    domain.DeliveryStatusSent,
				MessageID: "ses-1",
				CreatedAt: at,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO email_deliveries \(event_id, email_id, recipient, subject, status, message_id, error, created_at\)`).
					WithArgs("EVT-1", "EVT-1-MSG-1", "bob@example.com", "Thanks", "sent", "ses-1", nil, at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("del-1"))
			},
			wantID: "del-1",
		},
		{
			name: "failed delivery stores error text",
			rec: &domain.DeliveryRecord{
				EventID:   "EVT-1",
				EmailID:   "EVT-1-MSG-2",
				Recipient: "dave@example.com",
				Subject:   "Thanks",
				Status:    domain.DeliveryStatusFailed,
				Error:     "throttled",
				CreatedAt: at,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO email_deliveries`).
					WithArgs("EVT-1", "EVT-1-MSG-2", "dave@example.com", "Thanks", "failed", "", "throttled", at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("del-2"))
			},
			wantID: "del-2",
		},
		{
			name: "db error",
			rec:  &domain.DeliveryRecord{EventID: "EVT-1", CreatedAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO email_deliveries`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDeliveryLogRepository(db)
			err = repo.Create(ctx, tt.rec)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.rec.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeliveryLogRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 13, 0, 0, 0, time.UTC)
	cols := []string{"id", "event_id", "email_id", "recipient", "subject", "status", "message_id", "error", "created_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.DeliveryRecord
		wantErr bool
	}{
		{
			name: "rows",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id, email_id, recipient, subject, status, message_id, error, created_at`).
					WithArgs("EVT-1").
					WillReturnRows(sqlmock.NewRows(cols).
						AddRow("del-1", "EVT-1", "EVT-1-MSG-1", "bob@example.com", "Thanks", "sent", "ses-1", nil, at).
						AddRow("del-2", "EVT-1", "EVT-1-MSG-2", "dave@example.com", "Thanks", "failed", "", "throttled", at))
			},
			want: []*domain.DeliveryRecord{
				{ID: "del-1", EventID: "EVT-1", EmailID: "EVT-1-MSG-1", Recipient: "bob@example.com", Subject: "Thanks", Status: "sent", MessageID: "ses-1", CreatedAt: at},
				{ID: "del-2", EventID: "EVT-1", EmailID: "EVT-1-MSG-2", Recipient: "dave@example.com", Subject: "Thanks", Status: "failed", Error: "throttled", CreatedAt: at},
			},
		},
		{
			name: "no rows returns empty slice",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id`).
					WithArgs("EVT-1").
					WillReturnRows(sqlmock.NewRows(cols))
			},
			want: []*domain.DeliveryRecord{},
		},
		{
			name: "query error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, event_id`).
					WithArgs("EVT-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewDeliveryLogRepository(db)
			got, err := repo.ListByEventID(ctx, "EVT-1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
