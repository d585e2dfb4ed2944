package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

type checkInService struct {
	eventRepo   domain.EventRepository
	visitorRepo domain.VisitorRepository
	logger      *slog.Logger
	metrics     *monitoring.Metrics
	now         func() time.Time
}

// NewCheckInService returns the kiosk CheckInService. Check-in records are
// stamped with now, or time.Now when now is nil.
func NewCheckInService(
	eventRepo domain.EventRepository,
	visitorRepo domain.VisitorRepository,
	logger *slog.Logger,
	metrics *monitoring.Metrics,
	now func() time.Time,
) domain.CheckInService {
	if now == nil {
		now = time.Now
	}
	return &checkInService{
		eventRepo:   eventRepo,
		visitorRepo: visitorRepo,
		logger:      logger,
		metrics:     metrics,
		now:         now,
	}
}

func (s *checkInService) OpenEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	seen := make(map[string]struct{})
	open := []*domain.Event{}
	for _, e := range events {
		if !e.IsActive() || e.IsClosed() {
			continue
		}
		if _, ok := seen[e.ID()]; ok {
			continue
		}
		seen[e.ID()] = struct{}{}
		open = append(open, e)
	}
	return open, nil
}

func (s *checkInService) CheckIn(ctx context.Context, req domain.CheckInRequest) (*domain.CheckInResult, error) {
	eventLabel := monitoring.UnknownEvent
	event, err := s.lookupEvent(ctx, req.EventID)
	var res *domain.CheckInResult
	if err == nil {
		eventLabel = event.ID()
		res, err = s.checkIn(ctx, event, req)
	}
	s.metrics.CheckIn(eventLabel, checkInOutcome(err))
	if err != nil {
		s.logger.InfoContext(ctx, "check-in rejected", "event_id", req.EventID, "email", req.Email, "reason", err.Error())
		return nil, err
	}
	logNotices(ctx, s.logger, req.EventID, res.Notices)
	s.metrics.Notices(res.Notices)
	s.logger.InfoContext(ctx, "check-in accepted", "event_id", req.EventID, "visitor_id", res.Visitor.ID(),
		"attendance", res.Event.Attendance(), "capacity", res.Event.Capacity())
	return res, nil
}

// lookupEvent resolves the event selected at the kiosk.
func (s *checkInService) lookupEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: please select an event", domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *checkInService) checkIn(ctx context.Context, event *domain.Event, req domain.CheckInRequest) (*domain.CheckInResult, error) {
	if !event.IsActive() || event.IsClosed() {
		return nil, domain.ErrEventNotOpen
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	code := strings.TrimSpace(req.Code)
	if name == "" || email == "" || phone == "" || code == "" {
		return nil, fmt.Errorf("%w: all fields (name, email, phone, and code) are required", domain.ErrInvalidInput)
	}

	codeInt, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("%w: check-in code must be a valid integer", domain.ErrInvalidInput)
	}
	if codeInt != event.CheckInCode() {
		return nil, domain.ErrWrongCheckInCode
	}

	var notices []domain.Notice
	created := false
	visitor, err := s.visitorRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !strings.EqualFold(visitor.Name(), name) || visitor.Phone() != phone {
			notices = append(notices, domain.Notice{
				Kind: domain.NoticeIdentityMismatch,
				Message: fmt.Sprintf("submitted details for %s differ from the stored visitor; keeping %q / %q",
					email, visitor.Name(), visitor.Phone()),
			})
		}
	case errors.Is(err, domain.ErrNotFound):
		visitor = domain.NewVisitor(name, email, phone)
		created = true
	default:
		return nil, fmt.Errorf("get visitor: %w", err)
	}

	// AddVisitor re-checks open and capacity; nothing is applied before it accepts.
	added, err := event.AddVisitor(visitor)
	if err != nil {
		return nil, err
	}
	notices = append(notices, added...)

	visitor.SetMailingConsent(req.Consent)
	if created {
		if err := s.visitorRepo.Create(ctx, visitor); err != nil {
			return nil, fmt.Errorf("create visitor: %w", err)
		}
	}

	record := domain.NewCheckInRecord(visitor, event, s.now())
	visitor.AddCheckInRecord(record)

	return &domain.CheckInResult{
		Event:   event,
		Visitor: visitor,
		Record:  record,
		Created: created,
		Notices: notices,
	}, nil
}

func checkInOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrWrongCheckInCode):
		return "wrong_code"
	case errors.Is(err, domain.ErrEventNotOpen):
		return "not_open"
	case errors.Is(err, domain.ErrEventFull):
		return "full"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "error"
}
