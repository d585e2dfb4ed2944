package domain

// RSVPStatus is a visitor's response to an event invitation.
type RSVPStatus string

const (
	RSVPYes        RSVPStatus = "YES"
	RSVPNo         RSVPStatus = "NO"
	RSVPMaybe      RSVPStatus = "MAYBE"
	RSVPNoResponse RSVPStatus = "NO_RESPONSE"
)

// AllRSVPStatuses lists every status in reporting order.
var AllRSVPStatuses = []RSVPStatus{RSVPYes, RSVPNo, RSVPMaybe, RSVPNoResponse}

// Valid reports whether s is one of the known statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPYes, RSVPNo, RSVPMaybe, RSVPNoResponse:
		return true
	}
	return false
}

func (s RSVPStatus) String() string { return string(s) }

// RSVPEntry is one row of an event's RSVP ledger.
type RSVPEntry struct {
	Visitor *Visitor   `json:"visitor"`
	Status  RSVPStatus `json:"status"`
}

// rsvpLedger keeps visitor responses in insertion order, keyed by email.
type rsvpLedger struct {
	order   []string
	entries map[string]*RSVPEntry
}

func newRSVPLedger() *rsvpLedger {
	return &rsvpLedger{entries: make(map[string]*RSVPEntry)}
}

func (l *rsvpLedger) get(key string) (*RSVPEntry, bool) {
	e, ok := l.entries[key]
	return e, ok
}

func (l *rsvpLedger) put(key string, v *Visitor, status RSVPStatus) {
	if e, ok := l.entries[key]; ok {
		e.Status = status
		return
	}
	l.entries[key] = &RSVPEntry{Visitor: v, Status: status}
	l.order = append(l.order, key)
}

func (l *rsvpLedger) remove(key string) {
	if _, ok := l.entries[key]; !ok {
		return
	}
	delete(l.entries, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *rsvpLedger) count(status RSVPStatus) int {
	n := 0
	for _, e := range l.entries {
		if e.Status == status {
			n++
		}
	}
	return n
}

func (l *rsvpLedger) list(status RSVPStatus) []*Visitor {
	out := []*Visitor{}
	for _, k := range l.order {
		if e := l.entries[k]; e.Status == status {
			out = append(out, e.Visitor)
		}
	}
	return out
}

func (l *rsvpLedger) snapshot() []RSVPEntry {
	out := make([]RSVPEntry, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, *l.entries[k])
	}
	return out
}

func (l *rsvpLedger) len() int { return len(l.order) }
