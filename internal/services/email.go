package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

type deliveryService struct {
	mailer      domain.Mailer
	deliveryLog domain.DeliveryLogRepository
	logger      *slog.Logger
	metrics     *monitoring.Metrics
	now         func() time.Time
}

// NewDeliveryService returns a DeliveryService that sends through mailer and
// records every outcome in deliveryLog.
func NewDeliveryService(mailer domain.Mailer, deliveryLog domain.DeliveryLogRepository, logger *slog.Logger, metrics *monitoring.Metrics) domain.DeliveryService {
	return &deliveryService{
		mailer:      mailer,
		deliveryLog: deliveryLog,
		logger:      logger,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Deliver sends emails in order. A failed send is reported and the batch
// continues; a failure to record an outcome aborts the batch.
func (s *deliveryService) Deliver(ctx context.Context, eventID string, emails []domain.Email) ([]domain.DeliveryReport, error) {
	reports := make([]domain.DeliveryReport, 0, len(emails))
	for _, msg := range emails {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report := domain.DeliveryReport{EmailID: msg.ID, Recipient: msg.To}
		messageID, err := s.mailer.Send(ctx, msg)
		if err != nil {
			report.Status = domain.DeliveryStatusFailed
			report.Error = err.Error()
			s.logger.WarnContext(ctx, "email delivery failed", "event_id", eventID, "email_id", msg.ID, "to", msg.To, "err", err)
		} else {
			report.Status = domain.DeliveryStatusSent
			report.MessageID = messageID
			s.logger.InfoContext(ctx, "email delivered", "event_id", eventID, "email_id", msg.ID, "to", msg.To)
		}
		s.metrics.EmailDelivered(report.Status)

		rec := &domain.DeliveryRecord{
			EventID:   eventID,
			EmailID:   msg.ID,
			Recipient: msg.To,
			Subject:   msg.Subject,
			Status:    report.Status,
			MessageID: report.MessageID,
			Error:     report.Error,
			CreatedAt: s.now(),
		}
		if err := s.deliveryLog.Create(ctx, rec); err != nil {
			return reports, fmt.Errorf("record delivery of %s: %w", msg.ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
