package memory

import (
	"context"
	"fmt"
	"sync"

	"openhouse/internal/domain"
)

type visitorRepository struct {
	mu       sync.RWMutex
	order    []string
	visitors map[string]*domain.Visitor
}

// NewVisitorRepository returns an in-process VisitorRepository keyed by
// normalized email.
func NewVisitorRepository() domain.VisitorRepository {
	return &visitorRepository{visitors: make(map[string]*domain.Visitor)}
}

func (r *visitorRepository) Create(ctx context.Context, v *domain.Visitor) error {
	key := v.Key()
	if key == "" {
		return fmt.Errorf("%w: visitor email is required", domain.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.visitors[key]; ok {
		return fmt.Errorf("%w: visitor %s already exists", domain.ErrInvalidInput, v.Email())
	}
	r.visitors[key] = v
	r.order = append(r.order, key)
	return nil
}

func (r *visitorRepository) GetByEmail(ctx context.Context, email string) (*domain.Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visitors[domain.EmailKey(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *visitorRepository) List(ctx context.Context) ([]*domain.Visitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Visitor, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.visitors[k])
	}
	return out, nil
}
