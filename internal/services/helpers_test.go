package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

var testStart = time.Date(2025, 6, 14, 13, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *monitoring.Metrics {
	return monitoring.NewMetrics(prometheus.NewRegistry())
}

func newRegisteredMetrics() (*monitoring.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return monitoring.NewMetrics(reg), reg
}

// counterValue sums the counter samples of family name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			match := true
			for k, v := range want {
				if labels[k] != v {
					match = false
					break
				}
			}
			if match {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func newScheduledEvent(t *testing.T, capacity, code int) *domain.Event {
	t.Helper()
	agent := domain.NewAgent("Alice Agent", "alice@realty.example", "555-0000")
	house := domain.NewHouse("123 Main St", 500000, 2000, 3, 2, 1998, "")
	e, err := agent.CreateEvent(house, testStart, capacity, code)
	require.NoError(t, err)
	return e
}

func newActiveEvent(t *testing.T, capacity, code int) *domain.Event {
	t.Helper()
	e := newScheduledEvent(t, capacity, code)
	e.Activate()
	return e
}

func consenting(name, email string) *domain.Visitor {
	v := domain.NewVisitor(name, email, "555-0101")
	v.SetMailingConsent(true)
	return v
}
