package domain

import "strings"

// TemplateFields are the values substituted into message templates.
type TemplateFields struct {
	Name   string
	Event  string
	Date   string
	Time   string
	Status string
}

// FieldsFor fills the placeholders for v at e. Status is v's RSVP in e.
func FieldsFor(e *Event, v *Visitor) TemplateFields {
	return TemplateFields{
		Name:   v.Name(),
		Event:  e.Address(),
		Date:   e.Date(),
		Time:   e.TimeOfDay(),
		Status: e.RsvpStatus(v).String(),
	}
}

// RenderTemplate replaces {name}, {event}, {date}, {time} and {status} in tmpl.
// Unknown placeholders are left as written.
func RenderTemplate(tmpl string, f TemplateFields) string {
	return strings.NewReplacer(
		"{name}", f.Name,
		"{event}", f.Event,
		"{date}", f.Date,
		"{time}", f.Time,
		"{status}", f.Status,
	).Replace(tmpl)
}
