// Package models defines the data structures for the voucher distribution service.
package models

import (
	"strings"
)

// WinnerEvent is the webhook payload sent by the CRM when a winner is selected.
type WinnerEvent struct {
	ContactID         string `json:"contact_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	CertificationType string `json:"certification_type"`
}

// FullName returns the winner's display name, falling back to the email
// address when no name fields were supplied.
func (e *WinnerEvent) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
	if name == "" {
		return e.Email
	}
	return name
}

// Validate checks the mandatory winner event fields. It returns a
// *ValidationError naming every missing field, or nil when the event is
// complete enough to process.
func (e *WinnerEvent) Validate() error {
	var missing []string
	if strings.TrimSpace(e.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(e.CertificationType) == "" {
		missing = append(missing, "certification_type")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
