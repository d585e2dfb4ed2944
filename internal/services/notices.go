package services

import (
	"context"
	"log/slog"

	"openhouse/internal/domain"
)

// logNotices writes each notice at a level matching its kind.
func logNotices(ctx context.Context, logger *slog.Logger, eventID string, notices []domain.Notice) {
	for _, n := range notices {
		level := slog.LevelInfo
		if n.Kind == domain.NoticeOverbooked || n.Kind == domain.NoticeRejected {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, n.Message, "event_id", eventID, "kind", string(n.Kind))
	}
}
