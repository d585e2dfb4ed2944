package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// EventState is the lifecycle position of an event.
type EventState int

const (
	// StateScheduled is visible to agents but not open for check-in.
	StateScheduled EventState = iota
	// StateActive is open for check-in and shown on the kiosk.
	StateActive
	// StateClosed rejects check-ins and invitee changes until re-activated.
	StateClosed
)

func (s EventState) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("EventState(%d)", int(s))
}

// AttendancePolicy decides whether a repeat check-in by the same visitor
// counts towards attendance.
type AttendancePolicy string

const (
	// AttendanceEveryCheckIn counts every accepted check-in, including repeats.
	AttendanceEveryCheckIn AttendancePolicy = "every_checkin"
	// AttendanceDistinctVisitors counts a visitor only the first time they check in.
	AttendanceDistinctVisitors AttendancePolicy = "distinct_visitors"
)

// ParseAttendancePolicy maps a configuration value to a policy. Empty selects
// AttendanceEveryCheckIn.
func ParseAttendancePolicy(s string) (AttendancePolicy, error) {
	switch AttendancePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", AttendanceEveryCheckIn:
		return AttendanceEveryCheckIn, nil
	case AttendanceDistinctVisitors:
		return AttendanceDistinctVisitors, nil
	}
	return "", fmt.Errorf("%w: unknown attendance policy %q", ErrInvalidInput, s)
}

// EventOption customizes an Event at construction.
type EventOption func(*Event)

// WithAttendancePolicy sets how repeat check-ins are counted.
func WithAttendancePolicy(p AttendancePolicy) EventOption {
	return func(e *Event) {
		if p != "" {
			e.policy = p
		}
	}
}

// WithID overrides the identifier assigned by Agent.CreateEvent.
func WithID(id string) EventOption {
	return func(e *Event) {
		if id != "" {
			e.id = id
		}
	}
}

// Event is a single open house held at a House and owned by an Agent.
// It is not safe for concurrent use; callers serialize access per event.
type Event struct {
	id          string
	agent       *Agent
	house       *House
	startTime   time.Time
	capacity    int
	checkInCode int
	attendance  int
	visitors    []*Visitor
	state       EventState
	policy      AttendancePolicy
	rsvps       *rsvpLedger
}

// NewEvent returns a scheduled event with no attendance and an empty ledger.
func NewEvent(id string, startTime time.Time, agent *Agent, house *House, capacity, checkInCode int, opts ...EventOption) *Event {
	e := &Event{
		id:          id,
		agent:       agent,
		house:       house,
		startTime:   startTime,
		capacity:    capacity,
		checkInCode: checkInCode,
		state:       StateScheduled,
		policy:      AttendanceEveryCheckIn,
		rsvps:       newRSVPLedger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Event) ID() string                         { return e.id }
func (e *Event) Agent() *Agent                      { return e.agent }
func (e *Event) House() *House                      { return e.house }
func (e *Event) StartTime() time.Time               { return e.startTime }
func (e *Event) Capacity() int                      { return e.capacity }
func (e *Event) CheckInCode() int                   { return e.checkInCode }
func (e *Event) Attendance() int                    { return e.attendance }
func (e *Event) State() EventState                  { return e.state }
func (e *Event) AttendancePolicy() AttendancePolicy { return e.policy }

// IsScheduled is true for every event: events are created on the calendar and
// no transition removes them from it.
func (e *Event) IsScheduled() bool { return true }
func (e *Event) IsActive() bool    { return e.state == StateActive }
func (e *Event) IsClosed() bool    { return e.state == StateClosed }

// IsFull reports whether attendance has reached capacity.
func (e *Event) IsFull() bool { return e.attendance >= e.capacity }

// Date is the start date formatted as YYYY-MM-DD.
func (e *Event) Date() string { return e.startTime.Format("2006-01-02") }

// TimeOfDay is the start time formatted as HH:MM.
func (e *Event) TimeOfDay() string { return e.startTime.Format("15:04") }

// Address is the address of the house the event is held at.
func (e *Event) Address() string {
	if e.house == nil {
		return ""
	}
	return e.house.Address
}

// Visitors returns a copy of the checked-in visitor list.
func (e *Event) Visitors() []*Visitor {
	out := make([]*Visitor, len(e.visitors))
	copy(out, e.visitors)
	return out
}

// AttendanceRate is attendance divided by the number of distinct visitors, or 0
// when nobody has checked in.
func (e *Event) AttendanceRate() float64 {
	if len(e.visitors) == 0 {
		return 0
	}
	return float64(e.attendance) / float64(len(e.visitors))
}

// Schedule puts the event on the calendar. It is idempotent.
func (e *Event) Schedule() {}

// Activate opens the event for check-in. A closed event is reopened.
func (e *Event) Activate() {
	e.state = StateActive
}

// Close stops check-in and freezes the RSVP ledger until the next Activate.
func (e *Event) Close() {
	e.state = StateClosed
}

// AddVisitor accepts a visitor's check-in. The visitor is listed once per
// email; attendance is incremented according to the event's policy, and the
// visitor's RSVP is confirmed as YES. Recording the visit on the visitor is
// left to the caller.
func (e *Event) AddVisitor(v *Visitor) ([]Notice, error) {
	key := v.Key()
	if key == "" {
		return nil, fmt.Errorf("%w: visitor is required", ErrInvalidInput)
	}
	if e.state != StateActive {
		return nil, ErrEventNotOpen
	}
	if e.IsFull() {
		return nil, ErrEventFull
	}

	isNew := e.visitorIndex(key) < 0
	if isNew {
		e.visitors = append(e.visitors, v)
	}
	if isNew || e.policy == AttendanceEveryCheckIn {
		e.attendance++
	}

	var notices []Notice
	if e.RsvpStatus(v) != RSVPYes {
		notices = e.writeRsvp(key, v, RSVPYes)
	}
	return notices, nil
}

// HasVisitor reports whether a visitor with the same email has checked in.
func (e *Event) HasVisitor(v *Visitor) bool {
	return v.Key() != "" && e.visitorIndex(v.Key()) >= 0
}

// FindVisitorByEmail returns the checked-in visitor with the given email.
func (e *Event) FindVisitorByEmail(email string) (*Visitor, bool) {
	i := e.visitorIndex(EmailKey(email))
	if i < 0 {
		return nil, false
	}
	return e.visitors[i], true
}

func (e *Event) visitorIndex(key string) int {
	for i, existing := range e.visitors {
		if existing.Key() == key {
			return i
		}
	}
	return -1
}

// AddInvitee adds v to the ledger with NO_RESPONSE. An existing entry is left
// untouched and reported as not added.
func (e *Event) AddInvitee(v *Visitor) (bool, error) {
	key := v.Key()
	if key == "" {
		return false, fmt.Errorf("%w: visitor is required", ErrInvalidInput)
	}
	if e.state == StateClosed {
		return false, ErrEventClosed
	}
	if _, ok := e.rsvps.get(key); ok {
		return false, nil
	}
	e.rsvps.put(key, v, RSVPNoResponse)
	return true, nil
}

// SetRsvp records v's response. The write succeeds even if it overbooks the
// event; an overbooked notice is returned in that case.
func (e *Event) SetRsvp(v *Visitor, status RSVPStatus) ([]Notice, error) {
	key := v.Key()
	if e.state == StateClosed {
		return []Notice{newNotice(NoticeRejected, "event %s is closed; RSVP not recorded", e.id)}, ErrEventClosed
	}
	if key == "" || !status.Valid() {
		return []Notice{newNotice(NoticeRejected, "visitor and status are required")},
			fmt.Errorf("%w: visitor and status are required", ErrInvalidInput)
	}
	return e.writeRsvp(key, v, status), nil
}

func (e *Event) writeRsvp(key string, v *Visitor, status RSVPStatus) []Notice {
	e.rsvps.put(key, v, status)
	if status == RSVPYes {
		if yes := e.rsvps.count(RSVPYes); yes > e.capacity {
			return []Notice{newNotice(NoticeOverbooked,
				"event %s is overbooked: %d YES RSVPs for %d capacity", e.id, yes, e.capacity)}
		}
	}
	return nil
}

// RemoveRsvp deletes v's ledger entry.
func (e *Event) RemoveRsvp(v *Visitor) error {
	if e.state == StateClosed {
		return ErrEventClosed
	}
	e.rsvps.remove(v.Key())
	return nil
}

// RsvpStatus returns v's response, NO_RESPONSE when v is not in the ledger.
func (e *Event) RsvpStatus(v *Visitor) RSVPStatus {
	if entry, ok := e.rsvps.get(v.Key()); ok {
		return entry.Status
	}
	return RSVPNoResponse
}

// RsvpCount returns how many ledger entries have the given status.
func (e *Event) RsvpCount(status RSVPStatus) int { return e.rsvps.count(status) }

// RsvpList returns the visitors with the given status in invitation order.
func (e *Event) RsvpList(status RSVPStatus) []*Visitor { return e.rsvps.list(status) }

// AllRsvps returns a copy of the ledger in invitation order.
func (e *Event) AllRsvps() []RSVPEntry { return e.rsvps.snapshot() }

// InviteeCount is the number of ledger entries.
func (e *Event) InviteeCount() int { return e.rsvps.len() }

// IsOverbooked reports whether YES responses exceed capacity.
func (e *Event) IsOverbooked() bool { return e.rsvps.count(RSVPYes) > e.capacity }

// EventSummary is the read-side view of an event for reporting.
type EventSummary struct {
	EventID        string             `json:"event_id"`
	Address        string             `json:"address"`
	StartTime      time.Time          `json:"start_time"`
	State          string             `json:"state"`
	Capacity       int                `json:"capacity"`
	Attendance     int                `json:"attendance"`
	AttendanceRate float64            `json:"attendance_rate"`
	RSVPCounts     map[RSVPStatus]int `json:"rsvp_counts"`
	TotalInvites   int                `json:"total_invites"`
	Overbooked     bool               `json:"overbooked"`
}

// Summary builds a point-in-time EventSummary.
func (e *Event) Summary() EventSummary {
	counts := make(map[RSVPStatus]int, len(AllRSVPStatuses))
	for _, s := range AllRSVPStatuses {
		counts[s] = e.rsvps.count(s)
	}
	return EventSummary{
		EventID:        e.id,
		Address:        e.Address(),
		StartTime:      e.startTime,
		State:          e.state.String(),
		Capacity:       e.capacity,
		Attendance:     e.attendance,
		AttendanceRate: e.AttendanceRate(),
		RSVPCounts:     counts,
		TotalInvites:   e.rsvps.len(),
		Overbooked:     e.IsOverbooked(),
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Save(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}

// EventService defines the operator-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, agent *Agent, house *House, startTime time.Time, capacity, checkInCode int) (*Event, error)
	Schedule(ctx context.Context, eventID string) (*Event, error)
	Activate(ctx context.Context, eventID string) (*Event, error)
	Close(ctx context.Context, eventID string) (*Event, error)
	// Invite adds v to the event's ledger. It returns the canonical visitor for
	// v's email and whether a new ledger entry was created.
	Invite(ctx context.Context, eventID string, v *Visitor) (*Visitor, bool, error)
	SetRsvp(ctx context.Context, eventID string, v *Visitor, status RSVPStatus) ([]Notice, error)
	RemoveRsvp(ctx context.Context, eventID string, v *Visitor) error
	Summary(ctx context.Context, eventID string) (EventSummary, error)
	ListEvents(ctx context.Context) ([]*Event, error)
}
