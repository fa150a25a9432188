// Package database provides database operations for the voucher distribution service.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/davmoha/voucher-automation/internal/models"
)

// VoucherRepository handles voucher database operations.
type VoucherRepository struct {
	db *DB
}

// NewVoucherRepository creates a new voucher repository.
func NewVoucherRepository(db *DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

// Create inserts a new voucher. The status is always forced to Available and
// a voucher code is generated when the caller did not supply one.
func (r *VoucherRepository) Create(ctx context.Context, voucher *models.VoucherCreate) (*models.Voucher, error) {
	code := strings.TrimSpace(voucher.VoucherCode)
	if code == "" {
		code = strings.ToUpper(uuid.NewString())
	}

	query := `
		INSERT INTO vouchers (certification_type, status, voucher_code, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	created := &models.Voucher{
		CertificationType: voucher.CertificationType,
		Status:            models.VoucherStatusAvailable,
		VoucherCode:       code,
	}

	err := r.db.QueryRowContext(ctx, query,
		voucher.CertificationType,
		string(models.VoucherStatusAvailable),
		code,
		time.Now().UTC(),
	).Scan(&created.ID, &created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	return created, nil
}

// GetAll retrieves all vouchers ordered by certification type.
func (r *VoucherRepository) GetAll(ctx context.Context) ([]*models.Voucher, error) {
	query := `
		SELECT id, certification_type, status, voucher_code,
			COALESCE(winner_name, ''), COALESCE(winner_email, ''), date_issued, created_at
		FROM vouchers
		ORDER BY certification_type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*models.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	return vouchers, rows.Err()
}

// FirstAvailable retrieves one Available voucher for a certification type.
// No ordering is applied; any available voucher qualifies. Returns nil
// without error when none exists.
func (r *VoucherRepository) FirstAvailable(ctx context.Context, certificationType string) (*models.Voucher, error) {
	query := `
		SELECT id, certification_type, status, voucher_code,
			COALESCE(winner_name, ''), COALESCE(winner_email, ''), date_issued, created_at
		FROM vouchers
		WHERE certification_type = $1 AND status = $2
		LIMIT 1`

	voucher, err := scanVoucher(r.db.QueryRowContext(ctx, query, certificationType, string(models.VoucherStatusAvailable)))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get available voucher: %w", err)
	}

	return voucher, nil
}

// MarkUsed transitions a voucher from Available to Used, stamping the winner
// fields and issuance time. The update is conditional on the voucher still
// being Available so a concurrent claim cannot flip it twice.
func (r *VoucherRepository) MarkUsed(ctx context.Context, id int64, winnerName, winnerEmail string, issuedAt time.Time) error {
	affected, err := r.db.ExecContext(ctx, `
		UPDATE vouchers
		SET status = $1, winner_name = $2, winner_email = $3, date_issued = $4
		WHERE id = $5 AND status = $6`,
		string(models.VoucherStatusUsed), winnerName, winnerEmail, issuedAt,
		id, string(models.VoucherStatusAvailable))
	if err != nil {
		return fmt.Errorf("failed to mark voucher used: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("voucher %d is no longer available", id)
	}
	return nil
}

// scanVoucher scans a single row into a Voucher.
func scanVoucher(row pgx.Row) (*models.Voucher, error) {
	var voucher models.Voucher
	var status string

	err := row.Scan(
		&voucher.ID,
		&voucher.CertificationType,
		&status,
		&voucher.VoucherCode,
		&voucher.WinnerName,
		&voucher.WinnerEmail,
		&voucher.DateIssued,
		&voucher.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	voucher.Status = models.VoucherStatus(status)
	return &voucher, nil
}
