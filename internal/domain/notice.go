package domain

import "fmt"

// NoticeKind classifies an informational observation produced alongside a result.
type NoticeKind string

const (
	NoticeOverbooked       NoticeKind = "overbooked"
	NoticeConsentSkipped   NoticeKind = "consent_skipped"
	NoticeRejected         NoticeKind = "rejected"
	NoticeIdentityMismatch NoticeKind = "identity_mismatch"
	NoticeNoRecipients     NoticeKind = "no_recipients"
	NoticeInvalidEvent     NoticeKind = "invalid_event"
)

// Notice is a side-channel observation. It never signals failure on its own.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func newNotice(kind NoticeKind, format string, args ...any) Notice {
	return Notice{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HasNotice reports whether notices contains one of the given kind.
func HasNotice(notices []Notice, kind NoticeKind) bool {
	for _, n := range notices {
		if n.Kind == kind {
			return true
		}
	}
	return false
}
