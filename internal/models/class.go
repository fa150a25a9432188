// Package models defines the data structures for the voucher distribution service.
package models

import (
	"time"
)

// ClassSession represents a scheduled certification class.
type ClassSession struct {
	ID                int64     `json:"id" db:"id"`
	CertificationType string    `json:"certification_type" db:"certification_type"`
	ClassDate         time.Time `json:"class_date" db:"class_date"`
	ClassTime         string    `json:"class_time" db:"class_time"`
	LocationFormat    string    `json:"location_format" db:"location_format"`
	InstructorName    string    `json:"instructor_name" db:"instructor_name"`
	RegistrationLink  string    `json:"registration_link" db:"registration_link"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// ClassSessionCreate represents the data needed to schedule a new class session.
type ClassSessionCreate struct {
	CertificationType string    `json:"certification_type"`
	ClassDate         time.Time `json:"class_date"`
	ClassTime         string    `json:"class_time"`
	LocationFormat    string    `json:"location_format"`
	InstructorName    string    `json:"instructor_name"`
	RegistrationLink  string    `json:"registration_link"`
}
