// Package models defines the data structures for the voucher distribution service.
package models

import (
	"time"
)

// VoucherStatus represents the lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherStatusAvailable VoucherStatus = "Available"
	VoucherStatusUsed      VoucherStatus = "Used"
)

// IsValid checks if the voucher status is a known value.
func (s VoucherStatus) IsValid() bool {
	return s == VoucherStatusAvailable || s == VoucherStatusUsed
}

// Voucher represents a certification exam voucher.
type Voucher struct {
	ID                int64         `json:"id" db:"id"`
	CertificationType string        `json:"certification_type" db:"certification_type"`
	Status            VoucherStatus `json:"status" db:"status"`
	VoucherCode       string        `json:"voucher_code" db:"voucher_code"`
	WinnerName        string        `json:"winner_name,omitempty" db:"winner_name"`
	WinnerEmail       string        `json:"winner_email,omitempty" db:"winner_email"`
	DateIssued        *time.Time    `json:"date_issued,omitempty" db:"date_issued"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
}

// VoucherCreate represents the data needed to register a new voucher.
// Status is forced to Available on insert regardless of the supplied value.
type VoucherCreate struct {
	CertificationType string        `json:"certification_type"`
	Status            VoucherStatus `json:"status,omitempty"`
	VoucherCode       string        `json:"voucher_code,omitempty"`
}
