package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"openhouse/internal/domain"
)

// Metrics holds the counters for event, RSVP and messaging activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	checkIns        *prometheus.CounterVec
	rsvpWrites      *prometheus.CounterVec
	notices         *prometheus.CounterVec
	emailsPrepared  *prometheus.CounterVec
	emailsDelivered *prometheus.CounterVec
	transitions     *prometheus.CounterVec
}

// NewMetrics registers the open-house collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		checkIns: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_checkins_total",
				Help: "Check-in attempts by event and result",
			},
			[]string{"event_id", "result"},
		),
		rsvpWrites: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_rsvp_writes_total",
				Help: "RSVP writes by event and status",
			},
			[]string{"event_id", "status"},
		),
		notices: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_notices_total",
				Help: "Informational notices by kind",
			},
			[]string{"kind"},
		),
		emailsPrepared: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_emails_prepared_total",
				Help: "Prepared emails by message kind",
			},
			[]string{"kind"},
		),
		emailsDelivered: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_emails_delivered_total",
				Help: "Emails handed to the mailer by outcome",
			},
			[]string{"status"},
		),
		transitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "openhouse_event_transitions_total",
				Help: "Lifecycle transitions by target state",
			},
			[]string{"state"},
		),
	}
}

// UnknownEvent labels check-ins whose event could not be resolved, so kiosk
// input never creates new series.
const UnknownEvent = "unknown"

func (m *Metrics) CheckIn(eventID, result string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(eventID, result).Inc()
}

func (m *Metrics) RsvpWrite(eventID string, status domain.RSVPStatus) {
	if m == nil {
		return
	}
	m.rsvpWrites.WithLabelValues(eventID, status.String()).Inc()
}

func (m *Metrics) Notices(notices []domain.Notice) {
	if m == nil {
		return
	}
	for _, n := range notices {
		m.notices.WithLabelValues(string(n.Kind)).Inc()
	}
}

func (m *Metrics) EmailsPrepared(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.emailsPrepared.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) EmailDelivered(status string) {
	if m == nil {
		return
	}
	m.emailsDelivered.WithLabelValues(status).Inc()
}

func (m *Metrics) Transition(state domain.EventState) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(state.String()).Inc()
}
