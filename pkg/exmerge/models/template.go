package models

import "strings"

// EmailTemplate holds the subject and body text authored by the user.
type EmailTemplate struct {
	// Subject is the subject line template.
	Subject string `json:"subject"`
	// Body is the body template.
	Body string `json:"body"`
}

// IsBlank reports whether the body is empty or whitespace only.
func (t EmailTemplate) IsBlank() bool {
	return strings.TrimSpace(t.Body) == ""
}

// Text returns subject and body joined by a newline.
func (t EmailTemplate) Text() string {
	return t.Subject + "\n" + t.Body
}
