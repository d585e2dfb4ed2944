package domain

import (
	"context"
	"time"
)

// Email is a prepared message. It is never mutated after construction.
type Email struct {
	ID      string `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer transmits prepared emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, email Email) (messageID string, err error)
}

// EmailTemplateSource supplies default subject and body templates by name.
type EmailTemplateSource interface {
	Template(name string) (subject, body string, err error)
}

// Delivery outcomes recorded in the delivery log.
const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryRecord is the outcome of handing one Email to the Mailer.
type DeliveryRecord struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	EmailID   string    `json:"email_id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	MessageID string    `json:"message_id"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DeliveryLogRepository stores delivery outcomes.
type DeliveryLogRepository interface {
	Create(ctx context.Context, rec *DeliveryRecord) error
	ListByEventID(ctx context.Context, eventID string) ([]*DeliveryRecord, error)
}

// Message kinds used in prepared email IDs.
const (
	MessageKindVisit    = "MSG"
	MessageKindReminder = "REMINDER"
	MessageKindRsvp     = "RSVP"
)

// Notifier prepares addressed, templated messages. It never sends them.
type Notifier interface {
	// PrepareMessages addresses every consenting checked-in visitor.
	PrepareMessages(event *Event, subject, bodyTemplate string) ([]Email, []Notice)
	// PrepareMessagesFor addresses the consenting members of recipients.
	PrepareMessagesFor(event *Event, subject, bodyTemplate string, recipients []*Visitor) ([]Email, []Notice)
	// PrepareReminders addresses consenting MAYBE and NO_RESPONSE invitees.
	PrepareReminders(event *Event, subject, bodyTemplate string) ([]Email, []Notice)
	// PrepareRsvpConfirmation builds one message regardless of consent.
	PrepareRsvpConfirmation(event *Event, visitor *Visitor, status RSVPStatus, subject, bodyTemplate string) (*Email, []Notice)
}

// DeliveryReport is the outcome for one prepared email.
type DeliveryReport struct {
	EmailID   string `json:"email_id"`
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DeliveryService hands prepared emails to the Mailer and records the outcome.
type DeliveryService interface {
	Deliver(ctx context.Context, eventID string, emails []Email) ([]DeliveryReport, error)
}
