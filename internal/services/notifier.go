package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

type notifier struct {
	logger  *slog.Logger
	metrics *monitoring.Metrics
}

// NewNotifier returns a Notifier that logs skipped recipients and counts prepared messages.
func NewNotifier(logger *slog.Logger, metrics *monitoring.Metrics) domain.Notifier {
	return &notifier{logger: logger, metrics: metrics}
}

func (n *notifier) PrepareMessages(event *domain.Event, subject, bodyTemplate string) ([]domain.Email, []domain.Notice) {
	if event == nil {
		return n.invalidEvent()
	}
	return n.compose(event, domain.MessageKindVisit, event.Visitors(), subject, bodyTemplate)
}

func (n *notifier) PrepareMessagesFor(event *domain.Event, subject, bodyTemplate string, recipients []*domain.Visitor) ([]domain.Email, []domain.Notice) {
	if event == nil {
		return n.invalidEvent()
	}
	if len(recipients) == 0 {
		notices := []domain.Notice{{Kind: domain.NoticeNoRecipients, Message: "no recipients selected"}}
		n.record(event.ID(), notices)
		return []domain.Email{}, notices
	}
	return n.compose(event, domain.MessageKindVisit, recipients, subject, bodyTemplate)
}

func (n *notifier) PrepareReminders(event *domain.Event, subject, bodyTemplate string) ([]domain.Email, []domain.Notice) {
	if event == nil {
		return n.invalidEvent()
	}
	candidates := append(event.RsvpList(domain.RSVPMaybe), event.RsvpList(domain.RSVPNoResponse)...)
	return n.compose(event, domain.MessageKindReminder, candidates, subject, bodyTemplate)
}

func (n *notifier) PrepareRsvpConfirmation(event *domain.Event, visitor *domain.Visitor, status domain.RSVPStatus, subject, bodyTemplate string) (*domain.Email, []domain.Notice) {
	if event == nil {
		_, notices := n.invalidEvent()
		return nil, notices
	}
	if visitor == nil || !status.Valid() {
		notices := []domain.Notice{{Kind: domain.NoticeRejected, Message: "visitor and status are required for an RSVP confirmation"}}
		n.record(event.ID(), notices)
		return nil, notices
	}
	fields := domain.FieldsFor(event, visitor)
	fields.Status = status.String()
	msg := &domain.Email{
		ID:      fmt.Sprintf("%s-%s-%s", event.ID(), domain.MessageKindRsvp, strings.ReplaceAll(visitor.Name(), " ", "")),
		From:    senderOf(event),
		To:      visitor.Email(),
		Subject: domain.RenderTemplate(subject, fields),
		Body:    domain.RenderTemplate(bodyTemplate, fields),
	}
	n.metrics.EmailsPrepared(domain.MessageKindRsvp, 1)
	return msg, nil
}

// compose builds one email per consenting candidate, numbering them from 1.
func (n *notifier) compose(event *domain.Event, kind string, candidates []*domain.Visitor, subject, bodyTemplate string) ([]domain.Email, []domain.Notice) {
	emails := []domain.Email{}
	var notices []domain.Notice
	from := senderOf(event)
	counter := 1
	for _, v := range candidates {
		if v == nil {
			continue
		}
		if !v.HasMailingConsent() {
			notices = append(notices, domain.Notice{
				Kind:    domain.NoticeConsentSkipped,
				Message: fmt.Sprintf("visitor %s has opted out of the mailing list", v.Name()),
			})
			continue
		}
		fields := domain.FieldsFor(event, v)
		emails = append(emails, domain.Email{
			ID:      fmt.Sprintf("%s-%s-%d", event.ID(), kind, counter),
			From:    from,
			To:      v.Email(),
			Subject: domain.RenderTemplate(subject, fields),
			Body:    domain.RenderTemplate(bodyTemplate, fields),
		})
		counter++
	}
	n.metrics.EmailsPrepared(kind, len(emails))
	n.record(event.ID(), notices)
	return emails, notices
}

func (n *notifier) invalidEvent() ([]domain.Email, []domain.Notice) {
	notices := []domain.Notice{{Kind: domain.NoticeInvalidEvent, Message: "invalid event"}}
	n.record("", notices)
	return []domain.Email{}, notices
}

func (n *notifier) record(eventID string, notices []domain.Notice) {
	logNotices(context.Background(), n.logger, eventID, notices)
	n.metrics.Notices(notices)
}

func senderOf(event *domain.Event) string {
	if a := event.Agent(); a != nil {
		return a.Email
	}
	return ""
}
