// Package distributor implements the winner-to-voucher distribution workflow.
package distributor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
	"github.com/davmoha/voucher-automation/internal/services/ses"
)

// Workflow errors surfaced to the caller. Resolution failures carry the
// certification type via ResolutionError so handlers can echo it back.
var (
	ErrNoClassAvailable   = errors.New("no upcoming class available")
	ErrNoVoucherAvailable = errors.New("no voucher available")
)

// ResolutionError wraps a not-found outcome with the certification type that
// could not be satisfied.
type ResolutionError struct {
	Err               error
	CertificationType string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s for certification type %q", e.Err.Error(), e.CertificationType)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ClassStore resolves upcoming class sessions.
type ClassStore interface {
	NextUpcoming(ctx context.Context, certificationType string, onOrAfter time.Time) (*models.ClassSession, error)
}

// VoucherStore resolves and consumes vouchers.
type VoucherStore interface {
	FirstAvailable(ctx context.Context, certificationType string) (*models.Voucher, error)
	MarkUsed(ctx context.Context, id int64, winnerName, winnerEmail string, issuedAt time.Time) error
}

// DistributionStore appends audit records.
type DistributionStore interface {
	Create(ctx context.Context, dist *models.DistributionCreate) (int64, error)
}

// Mailer sends winner emails and operator alerts.
type Mailer interface {
	SendVoucherEmail(ctx context.Context, params ses.VoucherEmailParams) error
	SendOperatorAlert(ctx context.Context, subject, body string) error
}

// Result is the successful outcome of a distribution.
type Result struct {
	VoucherCode string    `json:"voucher_code"`
	ClassDate   time.Time `json:"class_date"`
	EmailSent   bool      `json:"email_sent"`
}

// Service orchestrates the distribution workflow. All collaborators are
// injected so tests can substitute fakes.
type Service struct {
	classes       ClassStore
	vouchers      VoucherStore
	distributions DistributionStore
	mailer        Mailer
	clock         clockwork.Clock
	logger        *zap.Logger
}

// NewService creates a new distribution service.
func NewService(classes ClassStore, vouchers VoucherStore, distributions DistributionStore, mailer Mailer, clock clockwork.Clock, logger *zap.Logger) *Service {
	return &Service{
		classes:       classes,
		vouchers:      vouchers,
		distributions: distributions,
		mailer:        mailer,
		clock:         clock,
		logger:        logger,
	}
}

// Distribute runs the five-step workflow for one winner event.
//
// Steps 1-3 (class resolution, voucher resolution, email send) are fatal on
// failure. Steps 4-5 (voucher consumption, audit insert) are not: once the
// email is out the door it cannot be undone, so their failures are logged and
// the request still succeeds. That leaves a window where a voucher reads
// Available after its code has been mailed.
func (s *Service) Distribute(ctx context.Context, event *models.WinnerEvent) (*Result, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	winnerName := event.FullName()
	today := startOfDay(s.clock.Now().UTC())

	// Step 1: earliest upcoming class for the certification type. A query
	// error and an empty result are treated the same: nothing to offer.
	class, err := s.classes.NextUpcoming(ctx, event.CertificationType, today)
	if err != nil || class == nil {
		if err != nil {
			s.logger.Error("Class lookup failed",
				zap.String("certificationType", event.CertificationType),
				zap.Error(err))
		}
		s.alert(ctx, "No Classes Available",
			ses.OperatorAlertBody("No upcoming class found for a giveaway winner.",
				event.CertificationType, event.Email))
		return nil, &ResolutionError{Err: ErrNoClassAvailable, CertificationType: event.CertificationType}
	}

	// Step 2: any available voucher. The class resolved above is simply not
	// used if this fails; there is nothing to roll back.
	voucher, err := s.vouchers.FirstAvailable(ctx, event.CertificationType)
	if err != nil || voucher == nil {
		if err != nil {
			s.logger.Error("Voucher lookup failed",
				zap.String("certificationType", event.CertificationType),
				zap.Error(err))
		}
		s.alert(ctx, "No Vouchers Available",
			ses.OperatorAlertBody("No available voucher found for a giveaway winner.",
				event.CertificationType, event.Email))
		return nil, &ResolutionError{Err: ErrNoVoucherAvailable, CertificationType: event.CertificationType}
	}

	// Step 3: send the voucher. Fail fast on error: no retry, no mutation.
	err = s.mailer.SendVoucherEmail(ctx, ses.VoucherEmailParams{
		To:                event.Email,
		WinnerName:        winnerName,
		CertificationType: event.CertificationType,
		ClassDate:         class.ClassDate,
		ClassTime:         class.ClassTime,
		LocationFormat:    class.LocationFormat,
		InstructorName:    class.InstructorName,
		RegistrationLink:  class.RegistrationLink,
		VoucherCode:       voucher.VoucherCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to email voucher: %w", err)
	}

	issuedAt := s.clock.Now().UTC()

	// Step 4: consume the voucher. The email is already sent, so a failure
	// here is logged and swallowed.
	if err := s.vouchers.MarkUsed(ctx, voucher.ID, winnerName, event.Email, issuedAt); err != nil {
		s.logger.Error("Failed to mark voucher used after send",
			zap.Int64("voucherID", voucher.ID),
			zap.String("voucherCode", voucher.VoucherCode),
			zap.Error(err))
	}

	// Step 5: append the audit record. Also non-fatal after the send.
	_, err = s.distributions.Create(ctx, &models.DistributionCreate{
		WinnerName:        winnerName,
		WinnerEmail:       event.Email,
		CertificationType: event.CertificationType,
		VoucherCode:       voucher.VoucherCode,
		ClassDate:         class.ClassDate,
		DateIssued:        issuedAt,
		Status:            models.DistributionStatusSent,
		ContactID:         event.ContactID,
	})
	if err != nil {
		s.logger.Error("Failed to record distribution after send",
			zap.String("voucherCode", voucher.VoucherCode),
			zap.Error(err))
	}

	s.logger.Info("Voucher distributed",
		zap.String("certificationType", event.CertificationType),
		zap.String("winnerEmail", event.Email),
		zap.String("voucherCode", voucher.VoucherCode))

	return &Result{
		VoucherCode: voucher.VoucherCode,
		ClassDate:   class.ClassDate,
		EmailSent:   true,
	}, nil
}

// alert sends an operator notification. Alert failures are swallowed so they
// never change how the triggering request resolves.
func (s *Service) alert(ctx context.Context, subject, body string) {
	if err := s.mailer.SendOperatorAlert(ctx, subject, body); err != nil {
		s.logger.Warn("Failed to send operator alert",
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// startOfDay truncates a time to midnight UTC so same-day classes stay
// eligible regardless of the time of the webhook.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
