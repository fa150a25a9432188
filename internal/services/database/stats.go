// Package database provides database operations for the voucher distribution service.
package database

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davmoha/voucher-automation/internal/models"
)

// StatsRepository derives dashboard counters from the three tables.
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Snapshot issues the three count queries concurrently and joins the results.
// Upcoming classes are those strictly after now, matching the dashboard's
// definition rather than the workflow's same-day cutoff.
func (r *StatsRepository) Snapshot(ctx context.Context, now time.Time) (*models.Stats, error) {
	stats := &models.Stats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM vouchers GROUP BY status`)
		if err != nil {
			return fmt.Errorf("failed to count vouchers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				return fmt.Errorf("failed to scan voucher count: %w", err)
			}
			switch models.VoucherStatus(status) {
			case models.VoucherStatusAvailable:
				stats.AvailableVouchers = count
			case models.VoucherStatusUsed:
				stats.UsedVouchers = count
			}
		}
		return rows.Err()
	})

	g.Go(func() error {
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM classes WHERE class_date > $1`, now).
			Scan(&stats.UpcomingClasses)
		if err != nil {
			return fmt.Errorf("failed to count upcoming classes: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM distributions`).
			Scan(&stats.TotalDistributions)
		if err != nil {
			return fmt.Errorf("failed to count distributions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}
