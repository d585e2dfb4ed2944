package postgres

import (
	"context"
	"database/sql"

	"openhouse/internal/domain"
)

type deliveryLogRepository struct {
	DB *sql.DB
}

func NewDeliveryLogRepository(db *sql.DB) domain.DeliveryLogRepository {
	return &deliveryLogRepository{
		DB: db,
	}
}

func (r *deliveryLogRepository) Create(ctx context.Context, rec *domain.DeliveryRecord) error {
	query := `
		INSERT INTO email_deliveries (event_id, email_id, recipient, subject, status, message_id, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		rec.EventID, rec.EmailID, rec.Recipient, rec.Subject, rec.Status, rec.MessageID, errText, rec.CreatedAt,
	).Scan(&rec.ID)
}

func (r *deliveryLogRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.DeliveryRecord, error) {
	query := `
		SELECT id, event_id, email_id, recipient, subject, status, message_id, error, created_at
		FROM email_deliveries
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.DeliveryRecord
	for rows.Next() {
		rec := &domain.DeliveryRecord{}
		var errText sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.EmailID, &rec.Recipient, &rec.Subject,
			&rec.Status, &rec.MessageID, &errText, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if errText.Valid {
			rec.Error = errText.String
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*domain.DeliveryRecord{}
	}
	return recs, nil
}
