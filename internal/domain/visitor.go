package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Visitor is a person attending or invited to open-house events. One Visitor
// exists per distinct email; it is shared across events. Identity fields are
// fixed at construction since events index visitors by email.
type Visitor struct {
	id      string
	name    string
	email   string
	phone   string
	consent bool
	history []CheckInRecord
}

// NewVisitor returns a Visitor with a fresh ID and no mailing consent.
func NewVisitor(name, email, phone string) *Visitor {
	return &Visitor{
		id:    uuid.NewString(),
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}
}

func (v *Visitor) ID() string    { return v.id }
func (v *Visitor) Name() string  { return v.name }
func (v *Visitor) Email() string { return v.email }
func (v *Visitor) Phone() string { return v.phone }

type visitorJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MarshalJSON encodes the visitor's identity fields.
func (v *Visitor) MarshalJSON() ([]byte, error) {
	return json.Marshal(visitorJSON{ID: v.id, Name: v.name, Email: v.email, Phone: v.phone})
}

// HasMailingConsent reports whether the visitor may receive bulk messages.
func (v *Visitor) HasMailingConsent() bool { return v.consent }

// SetMailingConsent records the visitor's latest consent choice.
func (v *Visitor) SetMailingConsent(consent bool) { v.consent = consent }

// AddCheckInRecord appends to the visitor's history.
func (v *Visitor) AddCheckInRecord(rec CheckInRecord) {
	v.history = append(v.history, rec)
}

// CheckInHistory returns a copy of the visitor's check-ins, oldest first.
func (v *Visitor) CheckInHistory() []CheckInRecord {
	out := make([]CheckInRecord, len(v.history))
	copy(out, v.history)
	return out
}

// Key is the canonical identity key used to match visitors across submissions.
func (v *Visitor) Key() string {
	if v == nil {
		return ""
	}
	return EmailKey(v.email)
}

// EmailKey normalizes an email address for identity comparison.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckInRecord is an immutable record of a visitor arriving at an event.
type CheckInRecord struct {
	visitor *Visitor
	event   *Event
	at      time.Time
}

// NewCheckInRecord stamps a visit of v at e.
func NewCheckInRecord(v *Visitor, e *Event, at time.Time) CheckInRecord {
	return CheckInRecord{visitor: v, event: e, at: at}
}

func (r CheckInRecord) Visitor() *Visitor { return r.visitor }
func (r CheckInRecord) Event() *Event     { return r.event }
func (r CheckInRecord) Time() time.Time   { return r.at }

// VisitorRepository stores the canonical Visitor per email.
type VisitorRepository interface {
	Create(ctx context.Context, v *Visitor) error
	GetByEmail(ctx context.Context, email string) (*Visitor, error)
	List(ctx context.Context) ([]*Visitor, error)
}
