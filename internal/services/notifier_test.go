package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openhouse/internal/domain"
)

// Scenario D.
func TestNotifier_PrepareMessages_FiltersConsent(t *testing.T) {
	e := newActiveEvent(t, 5, 1111)
	bob := consenting("Bob Visitor", "bob@example.com")
	carol := domain.NewVisitor("Carol Visitor", "carol@example.com", "555-2222")
	for _, v := range []*domain.Visitor{carol, bob} {
		_, err := e.AddVisitor(v)
		require.NoError(t, err)
	}

	n := NewNotifier(discardLogger(), newTestMetrics())
	emails, notices := n.PrepareMessages(e, "Subj", "Hi {name}")

	require.Len(t, emails, 1)
	assert.Equal(t, domain.Email{
		ID:      "EVT-1-MSG-1",
		From:    "alice@realty.example",
		To:      "bob@example.com",
		Subject: "Subj",
		Body:    "Hi Bob Visitor",
	}, emails[0])
	require.Len(t, notices, 1)
	assert.Equal(t, domain.NoticeConsentSkipped, notices[0].Kind)
	assert.Contains(t, notices[0].Message, "Carol Visitor")
}

func TestNotifier_PrepareMessages_NumbersAndPlaceholders(t *testing.T) {
	e := newActiveEvent(t, 5, 1111)
	for _, v := range []*domain.Visitor{
		consenting("Bob Visitor", "bob@example.com"),
		domain.NewVisitor("Carol Visitor", "carol@example.com", "555-2222"),
		consenting("Dave Visitor", "dave@example.com"),
	} {
		_, err := e.AddVisitor(v)
		require.NoError(t, err)
	}

	n := NewNotifier(discardLogger(), nil)
	emails, _ := n.PrepareMessages(e, "Thanks for visiting {event}", "{name}|{event}|{date}|{time}|{status}")

	require.Len(t, emails, 2)
	assert.Equal(t, "EVT-1-MSG-1", emails[0].ID)
	assert.Equal(t, "EVT-1-MSG-2", emails[1].ID)
	assert.Equal(t, "dave@example.com", emails[1].To)
	assert.Equal(t, "Thanks for visiting 123 Main St", emails[1].Subject)
	assert.Equal(t, "Dave Visitor|123 Main St|2025-06-14|13:00|YES", emails[1].Body)
}

func TestNotifier_PrepareMessagesFor(t *testing.T) {
	e := newActiveEvent(t, 5, 1111)
	bob := consenting("Bob Visitor", "bob@example.com")
	dave := consenting("Dave Visitor", "dave@example.com")
	carol := domain.NewVisitor("Carol Visitor", "carol@example.com", "555-2222")
	for _, v := range []*domain.Visitor{bob, dave, carol} {
		_, err := e.AddVisitor(v)
		require.NoError(t, err)
	}
	n := NewNotifier(discardLogger(), nil)

	t.Run("selection and consent both required", func(t *testing.T) {
		emails, notices := n.PrepareMessagesFor(e, "Subj", "Hi {name}", []*domain.Visitor{dave, carol, nil})
		require.Len(t, emails, 1)
		assert.Equal(t, "EVT-1-MSG-1", emails[0].ID)
		assert.Equal(t, "dave@example.com", emails[0].To)
		assert.True(t, domain.HasNotice(notices, domain.NoticeConsentSkipped))
	})

	t.Run("empty selection", func(t *testing.T) {
		emails, notices := n.PrepareMessagesFor(e, "Subj", "Hi {name}", nil)
		assert.Empty(t, emails)
		assert.NotNil(t, emails)
		assert.True(t, domain.HasNotice(notices, domain.NoticeNoRecipients))
	})
}

func TestNotifier_PrepareReminders(t *testing.T) {
	e := newActiveEvent(t, 5, 1111)
	yes := consenting("Yes Person", "yes@example.com")
	noResp := consenting("Quiet Person", "quiet@example.com")
	maybe := consenting("Maybe Person", "maybe@example.com")
	optedOut := domain.NewVisitor("Private Person", "private@example.com", "1")

	_, _ = e.SetRsvp(yes, domain.RSVPYes)
	_, _ = e.AddInvitee(noResp)
	_, _ = e.SetRsvp(maybe, domain.RSVPMaybe)
	_, _ = e.SetRsvp(optedOut, domain.RSVPMaybe)

	n := NewNotifier(discardLogger(), newTestMetrics())
	emails, notices := n.PrepareReminders(e, "Reminder", "Hi {name}, you said {status}")

	require.Len(t, emails, 2)
	assert.Equal(t, "EVT-1-REMINDER-1", emails[0].ID)
	assert.Equal(t, "maybe@example.com", emails[0].To)
	assert.Equal(t, "Hi Maybe Person, you said MAYBE", emails[0].Body)
	assert.Equal(t, "EVT-1-REMINDER-2", emails[1].ID)
	assert.Equal(t, "quiet@example.com", emails[1].To)
	assert.Equal(t, "Hi Quiet Person, you said NO_RESPONSE", emails[1].Body)
	assert.True(t, domain.HasNotice(notices, domain.NoticeConsentSkipped))
}

// Scenario E.
func TestNotifier_PrepareRsvpConfirmation(t *testing.T) {
	e := newActiveEvent(t, 5, 1111)
	carol := domain.NewVisitor("Carol Visitor", "carol@example.com", "555-2222")
	n := NewNotifier(discardLogger(), nil)

	msg, notices := n.PrepareRsvpConfirmation(e, carol, domain.RSVPYes, "Your RSVP", "Hi {name}, you are {status} for {event} on {date} at {time}")
	require.NotNil(t, msg)
	assert.Empty(t, notices)
	assert.Equal(t, domain.Email{
		ID:      "EVT-1-RSVP-CarolVisitor",
		From:    "alice@realty.example",
		To:      "carol@example.com",
		Subject: "Your RSVP",
		Body:    "Hi Carol Visitor, you are YES for 123 Main St on 2025-06-14 at 13:00",
	}, *msg)

	msg, notices = n.PrepareRsvpConfirmation(e, nil, domain.RSVPYes, "s", "b")
	assert.Nil(t, msg)
	assert.True(t, domain.HasNotice(notices, domain.NoticeRejected))
	assert.False(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))

	msg, notices = n.PrepareRsvpConfirmation(e, carol, "", "s", "b")
	assert.Nil(t, msg)
	assert.True(t, domain.HasNotice(notices, domain.NoticeRejected))
	assert.False(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))

	msg, notices = n.PrepareRsvpConfirmation(nil, carol, domain.RSVPYes, "s", "b")
	assert.Nil(t, msg)
	assert.True(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))
}

func TestNotifier_NilEvent(t *testing.T) {
	n := NewNotifier(discardLogger(), nil)

	emails, notices := n.PrepareMessages(nil, "s", "b")
	assert.Empty(t, emails)
	assert.True(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))

	emails, notices = n.PrepareMessagesFor(nil, "s", "b", []*domain.Visitor{consenting("A", "a@example.com")})
	assert.Empty(t, emails)
	assert.True(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))

	emails, notices = n.PrepareReminders(nil, "s", "b")
	assert.Empty(t, emails)
	assert.True(t, domain.HasNotice(notices, domain.NoticeInvalidEvent))
}
