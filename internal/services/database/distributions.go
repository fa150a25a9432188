// Package database provides database operations for the voucher distribution service.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/davmoha/voucher-automation/internal/models"
)

// DistributionRepository handles distribution audit record operations.
type DistributionRepository struct {
	db *DB
}

// NewDistributionRepository creates a new distribution repository.
func NewDistributionRepository(db *DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

// Create appends a new distribution record.
func (r *DistributionRepository) Create(ctx context.Context, dist *models.DistributionCreate) (int64, error) {
	query := `
		INSERT INTO distributions (
			winner_name, winner_email, certification_type, voucher_code,
			class_date, date_issued, status, contact_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		dist.WinnerName,
		dist.WinnerEmail,
		dist.CertificationType,
		dist.VoucherCode,
		dist.ClassDate,
		dist.DateIssued,
		dist.Status,
		dist.ContactID,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create distribution record: %w", err)
	}

	return id, nil
}

// GetAll retrieves all distribution records, newest issuance first.
func (r *DistributionRepository) GetAll(ctx context.Context) ([]*models.Distribution, error) {
	query := `
		SELECT id, winner_name, winner_email, certification_type, voucher_code,
			class_date, date_issued, status, contact_id, created_at
		FROM distributions
		ORDER BY date_issued DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distributions: %w", err)
	}
	defer rows.Close()

	var dists []*models.Distribution
	for rows.Next() {
		var d models.Distribution
		err := rows.Scan(
			&d.ID,
			&d.WinnerName,
			&d.WinnerEmail,
			&d.CertificationType,
			&d.VoucherCode,
			&d.ClassDate,
			&d.DateIssued,
			&d.Status,
			&d.ContactID,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution: %w", err)
		}
		dists = append(dists, &d)
	}

	return dists, rows.Err()
}
