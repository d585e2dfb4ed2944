package domain

import (
	"fmt"
	"strings"
	"time"
)

// Agent is the real-estate agent who owns events and sends their messages.
type Agent struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	properties []*House
	events     []*Event
}

// NewAgent returns an Agent with no properties or events.
func NewAgent(name, email, phone string) *Agent {
	return &Agent{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
}

// AddProperty adds h to the agent's listings once.
func (a *Agent) AddProperty(h *House) {
	if h == nil {
		return
	}
	for _, p := range a.properties {
		if p == h {
			return
		}
	}
	a.properties = append(a.properties, h)
}

// Properties returns a copy of the agent's listings.
func (a *Agent) Properties() []*House {
	out := make([]*House, len(a.properties))
	copy(out, a.properties)
	return out
}

// Events returns a copy of the agent's events in creation order.
func (a *Agent) Events() []*Event {
	out := make([]*Event, len(a.events))
	copy(out, a.events)
	return out
}

// CreateEvent schedules a new event at house. IDs are EVT-<n>, numbered per agent.
func (a *Agent) CreateEvent(house *House, startTime time.Time, capacity, checkInCode int, opts ...EventOption) (*Event, error) {
	if house == nil {
		return nil, fmt.Errorf("%w: house is required", ErrInvalidInput)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}
	id := fmt.Sprintf("EVT-%d", len(a.events)+1)
	e := NewEvent(id, startTime, a, house, capacity, checkInCode, opts...)
	a.events = append(a.events, e)
	house.AddEvent(e)
	return e, nil
}

// AddEvent attaches an existing event to the agent. It is rejected when the
// event is already attached or another event starts at the same time.
func (a *Agent) AddEvent(e *Event) error {
	if e == nil {
		return fmt.Errorf("%w: event is required", ErrInvalidInput)
	}
	for _, existing := range a.events {
		if existing == e {
			return fmt.Errorf("%w: event %s already exists", ErrInvalidInput, e.ID())
		}
		if existing.StartTime().Equal(e.StartTime()) {
			return ErrScheduleConflict
		}
	}
	a.events = append(a.events, e)
	return nil
}

// ValidateEvent reports whether e is complete enough to be opened.
func (a *Agent) ValidateEvent(e *Event) bool {
	return e != nil && e.House() != nil && e.Capacity() > 0
}
