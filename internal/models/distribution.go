// Package models defines the data structures for the voucher distribution service.
package models

import (
	"time"
)

// DistributionStatusSent is the only status the workflow records today.
const DistributionStatusSent = "Sent"

// Distribution is the append-only audit record of one voucher hand-off.
type Distribution struct {
	ID                int64     `json:"id" db:"id"`
	WinnerName        string    `json:"winner_name" db:"winner_name"`
	WinnerEmail       string    `json:"winner_email" db:"winner_email"`
	CertificationType string    `json:"certification_type" db:"certification_type"`
	VoucherCode       string    `json:"voucher_code" db:"voucher_code"`
	ClassDate         time.Time `json:"class_date" db:"class_date"`
	DateIssued        time.Time `json:"date_issued" db:"date_issued"`
	Status            string    `json:"status" db:"status"`
	ContactID         string    `json:"contact_id" db:"contact_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// DistributionCreate represents the data needed to append a distribution record.
type DistributionCreate struct {
	WinnerName        string    `json:"winner_name"`
	WinnerEmail       string    `json:"winner_email"`
	CertificationType string    `json:"certification_type"`
	VoucherCode       string    `json:"voucher_code"`
	ClassDate         time.Time `json:"class_date"`
	DateIssued        time.Time `json:"date_issued"`
	Status            string    `json:"status"`
	ContactID         string    `json:"contact_id"`
}

// Stats holds the derived counters served by the stats endpoint.
type Stats struct {
	AvailableVouchers  int `json:"availableVouchers"`
	UsedVouchers       int `json:"usedVouchers"`
	UpcomingClasses    int `json:"upcomingClasses"`
	TotalDistributions int `json:"totalDistributions"`
}
