package memory

import (
	"context"
	"fmt"
	"sync"

	"openhouse/internal/domain"
)

type eventRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]*domain.Event
}

// NewEventRepository returns an in-process EventRepository. Events are kept
// in the order they were first saved.
func NewEventRepository() domain.EventRepository {
	return &eventRepository{events: make(map[string]*domain.Event)}
}

func (r *eventRepository) Save(ctx context.Context, e *domain.Event) error {
	if e == nil || e.ID() == "" {
		return fmt.Errorf("%w: event id is required", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.events[e.ID()]; ok {
		if existing != e {
			return fmt.Errorf("%w: event id %s already in use", domain.ErrInvalidInput, e.ID())
		}
		return nil
	}
	r.events[e.ID()] = e
	r.order = append(r.order, e.ID())
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.events[id])
	}
	return out, nil
}
