// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
	"github.com/davmoha/voucher-automation/internal/services/distributor"
)

// Distributor runs the winner distribution workflow.
type Distributor interface {
	Distribute(ctx context.Context, event *models.WinnerEvent) (*distributor.Result, error)
}

// winnerResponse is the success payload of the winner webhook.
type winnerResponse struct {
	Success     bool   `json:"success"`
	VoucherCode string `json:"voucher_code"`
	ClassDate   string `json:"class_date"`
	EmailSent   bool   `json:"email_sent"`
}

// handleWinnerWebhook processes a winner-selected event from the CRM.
func (s *Server) handleWinnerWebhook(w http.ResponseWriter, r *http.Request) {
	var event models.WinnerEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	requestID := uuid.NewString()
	s.logger.Info("Winner webhook received",
		zap.String("requestID", requestID),
		zap.String("contactID", event.ContactID),
		zap.String("certificationType", event.CertificationType))

	result, err := s.distributor.Distribute(r.Context(), &event)
	if err != nil {
		status, body := distributionError(err)
		s.logger.Warn("Distribution failed",
			zap.String("requestID", requestID),
			zap.Int("status", status),
			zap.Error(err))
		writeJSON(w, status, body)
		return
	}

	writeJSON(w, http.StatusOK, winnerResponse{
		Success:     true,
		VoucherCode: result.VoucherCode,
		ClassDate:   result.ClassDate.Format("2006-01-02"),
		EmailSent:   result.EmailSent,
	})
}

// distributionError maps a workflow error to its HTTP status and body.
// Validation failures are the caller's fault, resolution failures are
// not-found with the certification type echoed back, and everything else
// (including a failed send) is a server error carrying the error text.
func distributionError(err error) (int, errorBody) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, errorBody{Error: verr.Error()}
	}

	var rerr *distributor.ResolutionError
	if errors.As(err, &rerr) {
		return http.StatusNotFound, errorBody{
			Error:             rerr.Err.Error(),
			CertificationType: rerr.CertificationType,
		}
	}

	return http.StatusInternalServerError, errorBody{Error: err.Error()}
}
