package memory

import (
	"context"
	"strconv"
	"sync"

	"openhouse/internal/domain"
)

type deliveryLogRepository struct {
	mu      sync.Mutex
	records []*domain.DeliveryRecord
}

// NewDeliveryLogRepository returns a DeliveryLogRepository that keeps records
// for the life of the process. IDs are assigned sequentially.
func NewDeliveryLogRepository() domain.DeliveryLogRepository {
	return &deliveryLogRepository{}
}

func (r *deliveryLogRepository) Create(ctx context.Context, rec *domain.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = strconv.Itoa(len(r.records) + 1)
	cp := *rec
	r.records = append(r.records, &cp)
	return nil
}

func (r *deliveryLogRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.DeliveryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.DeliveryRecord{}
	for _, rec := range r.records {
		if rec.EventID == eventID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}
