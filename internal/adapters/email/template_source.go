package email

import (
	"embed"
	"fmt"
	"strings"

	"openhouse/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Names of the built-in message templates.
const (
	TemplateThankYou         = "thank_you"
	TemplateReminder         = "reminder"
	TemplateRsvpConfirmation = "rsvp_confirmation"
)

// templateSource implements domain.EmailTemplateSource using embedded template files.
type templateSource struct{}

// NewTemplateSource returns an EmailTemplateSource that loads templates from the embedded templates folder.
func NewTemplateSource() domain.EmailTemplateSource {
	return &templateSource{}
}

// Template returns the raw subject and body for name (e.g. "reminder").
// Placeholders such as {name} are left for the composer to fill.
func (s *templateSource) Template(name string) (subject, body string, err error) {
	raw, err := templateFS.ReadFile("templates/" + name + "_subject.txt")
	if err != nil {
		return "", "", fmt.Errorf("read subject template %q: %w", name, err)
	}
	subject = strings.TrimSpace(string(raw))
	raw, err = templateFS.ReadFile("templates/" + name + ".txt")
	if err != nil {
		return "", "", fmt.Errorf("read body template %q: %w", name, err)
	}
	return subject, string(raw), nil
}
