package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

type eventService struct {
	eventRepo   domain.EventRepository
	visitorRepo domain.VisitorRepository
	policy      domain.AttendancePolicy
	logger      *slog.Logger
	metrics     *monitoring.Metrics
}

// NewEventService returns an EventService. New events use the given attendance policy.
func NewEventService(
	eventRepo domain.EventRepository,
	visitorRepo domain.VisitorRepository,
	policy domain.AttendancePolicy,
	logger *slog.Logger,
	metrics *monitoring.Metrics,
) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		visitorRepo: visitorRepo,
		policy:      policy,
		logger:      logger,
		metrics:     metrics,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, agent *domain.Agent, house *domain.House, startTime time.Time, capacity, checkInCode int) (*domain.Event, error) {
	if agent == nil {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	existing, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	// Agent numbering restarts per agent; the repository needs IDs unique across agents.
	id := fmt.Sprintf("EVT-%d", len(existing)+1)
	event, err := agent.CreateEvent(house, startTime, capacity, checkInCode,
		domain.WithID(id), domain.WithAttendancePolicy(s.policy))
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	s.logger.InfoContext(ctx, "event created", "event_id", event.ID(), "agent", agent.Email,
		"address", event.Address(), "capacity", capacity, "policy", string(event.AttendancePolicy()))
	return event, nil
}

func (s *eventService) Schedule(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, (*domain.Event).Schedule)
}

func (s *eventService) Activate(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, (*domain.Event).Activate)
}

func (s *eventService) Close(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.transition(ctx, eventID, (*domain.Event).Close)
}

func (s *eventService) transition(ctx context.Context, eventID string, apply func(*domain.Event)) (*domain.Event, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	from := event.State()
	apply(event)
	if event.State() == from {
		return event, nil
	}
	s.metrics.Transition(event.State())
	s.logger.InfoContext(ctx, "event transition", "event_id", eventID, "from", from.String(), "to", event.State().String())
	return event, nil
}

func (s *eventService) Invite(ctx context.Context, eventID string, v *domain.Visitor) (*domain.Visitor, bool, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, false, err
	}
	if event.IsClosed() {
		return nil, false, domain.ErrEventClosed
	}
	visitor, err := s.canonicalVisitor(ctx, v)
	if err != nil {
		return nil, false, err
	}
	added, err := event.AddInvitee(visitor)
	if err != nil {
		return nil, false, err
	}
	if added {
		s.metrics.RsvpWrite(eventID, domain.RSVPNoResponse)
	}
	return visitor, added, nil
}

func (s *eventService) SetRsvp(ctx context.Context, eventID string, v *domain.Visitor, status domain.RSVPStatus) ([]domain.Notice, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// A closed event rejects the write before the visitor is registered.
	visitor := v
	if !event.IsClosed() {
		if visitor, err = s.canonicalVisitor(ctx, v); err != nil {
			return nil, err
		}
	}
	notices, err := event.SetRsvp(visitor, status)
	logNotices(ctx, s.logger, eventID, notices)
	s.metrics.Notices(notices)
	if err != nil {
		return notices, err
	}
	s.metrics.RsvpWrite(eventID, status)
	return notices, nil
}

func (s *eventService) RemoveRsvp(ctx context.Context, eventID string, v *domain.Visitor) error {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: visitor is required", domain.ErrInvalidInput)
	}
	return event.RemoveRsvp(v)
}

func (s *eventService) Summary(ctx context.Context, eventID string) (domain.EventSummary, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return domain.EventSummary{}, err
	}
	return event.Summary(), nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// canonicalVisitor returns the stored visitor for v's email, registering v
// when the email is new.
func (s *eventService) canonicalVisitor(ctx context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	if v.Key() == "" {
		return nil, fmt.Errorf("%w: visitor email is required", domain.ErrInvalidInput)
	}
	existing, err := s.visitorRepo.GetByEmail(ctx, v.Email())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get visitor: %w", err)
	}
	if err := s.visitorRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create visitor: %w", err)
	}
	return v, nil
}
