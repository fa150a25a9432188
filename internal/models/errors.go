// Package models defines the data structures for the voucher distribution service.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrEmptyCertification = errors.New("certification_type cannot be empty")
)

// ValidationError reports required request fields that were not supplied.
type ValidationError struct {
	Missing []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "missing required field(s): " + strings.Join(e.Missing, ", ")
}

// ValidateClassSessionCreate validates class session creation data.
func ValidateClassSessionCreate(c *ClassSessionCreate) error {
	if strings.TrimSpace(c.CertificationType) == "" {
		return ErrEmptyCertification
	}
	return nil
}

// ValidateVoucherCreate validates voucher creation data. The status field is
// not validated because inserts force it to Available anyway.
func ValidateVoucherCreate(v *VoucherCreate) error {
	if strings.TrimSpace(v.CertificationType) == "" {
		return ErrEmptyCertification
	}
	return nil
}
