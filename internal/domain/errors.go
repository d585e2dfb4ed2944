package domain

import "errors"

// Sentinel errors for event, RSVP and check-in operations. Every rejection is a
// no-op on state; the error message is safe to show to an operator.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrEventNotOpen     = errors.New("event is not open for check-in")
	ErrEventClosed      = errors.New("event is closed")
	ErrEventFull        = errors.New("event capacity full")
	ErrWrongCheckInCode = errors.New("incorrect check-in code for this event")
	ErrScheduleConflict = errors.New("there is already an event at this time")
)
