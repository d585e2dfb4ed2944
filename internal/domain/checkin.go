package domain

import "context"

// CheckInRequest is a kiosk submission. All string fields are required.
type CheckInRequest struct {
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Code    string `json:"code"`
	Consent bool   `json:"consent"`
}

// CheckInResult describes an accepted check-in.
type CheckInResult struct {
	Event   *Event        `json:"-"`
	Visitor *Visitor      `json:"visitor"`
	Record  CheckInRecord `json:"-"`
	// Created is true when the submission introduced a new visitor.
	Created bool     `json:"created"`
	Notices []Notice `json:"notices"`
}

// CheckInService runs the kiosk check-in flow.
type CheckInService interface {
	// OpenEvents lists events currently accepting check-ins.
	OpenEvents(ctx context.Context) ([]*Event, error)
	CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
}
