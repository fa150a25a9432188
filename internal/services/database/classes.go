// Package database provides database operations for the voucher distribution service.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/davmoha/voucher-automation/internal/models"
)

// ClassRepository handles class session database operations.
type ClassRepository struct {
	db *DB
}

// NewClassRepository creates a new class repository.
func NewClassRepository(db *DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class session into the database.
func (r *ClassRepository) Create(ctx context.Context, class *models.ClassSessionCreate) (*models.ClassSession, error) {
	query := `
		INSERT INTO classes (
			certification_type, class_date, class_time, location_format,
			instructor_name, registration_link, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	created := &models.ClassSession{
		CertificationType: class.CertificationType,
		ClassDate:         class.ClassDate,
		ClassTime:         class.ClassTime,
		LocationFormat:    class.LocationFormat,
		InstructorName:    class.InstructorName,
		RegistrationLink:  class.RegistrationLink,
	}

	err := r.db.QueryRowContext(ctx, query,
		class.CertificationType,
		class.ClassDate,
		class.ClassTime,
		class.LocationFormat,
		class.InstructorName,
		class.RegistrationLink,
		time.Now().UTC(),
	).Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create class session: %w", err)
	}

	return created, nil
}

// GetAll retrieves all class sessions ordered by class date.
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.ClassSession, error) {
	query := `
		SELECT id, certification_type, class_date, class_time, location_format,
			instructor_name, registration_link, created_at
		FROM classes
		ORDER BY class_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query class sessions: %w", err)
	}
	defer rows.Close()

	var classes []*models.ClassSession
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan class session: %w", err)
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

// NextUpcoming retrieves the earliest class session for a certification type
// on or after the cutoff date. Returns nil without error when none exists.
func (r *ClassRepository) NextUpcoming(ctx context.Context, certificationType string, onOrAfter time.Time) (*models.ClassSession, error) {
	query := `
		SELECT id, certification_type, class_date, class_time, location_format,
			instructor_name, registration_link, created_at
		FROM classes
		WHERE certification_type = $1 AND class_date >= $2
		ORDER BY class_date
		LIMIT 1`

	class, err := scanClass(r.db.QueryRowContext(ctx, query, certificationType, onOrAfter))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming class: %w", err)
	}

	return class, nil
}

// scanClass scans a single row into a ClassSession.
func scanClass(row pgx.Row) (*models.ClassSession, error) {
	var class models.ClassSession

	err := row.Scan(
		&class.ID,
		&class.CertificationType,
		&class.ClassDate,
		&class.ClassTime,
		&class.LocationFormat,
		&class.InstructorName,
		&class.RegistrationLink,
		&class.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &class, nil
}
