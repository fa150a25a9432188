// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
)

// handleListClasses returns all class sessions ordered by date.
func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.classes.GetAll(r.Context())
	if err != nil {
		s.logger.Error("Failed to list classes", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if classes == nil {
		classes = []*models.ClassSession{}
	}
	writeJSON(w, http.StatusOK, classes)
}

// handleCreateClass inserts one class session.
func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req models.ClassSessionCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := models.ValidateClassSessionCreate(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.classes.Create(r.Context(), &req)
	if err != nil {
		s.logger.Error("Failed to create class", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleListVouchers returns all vouchers ordered by certification type.
func (s *Server) handleListVouchers(w http.ResponseWriter, r *http.Request) {
	vouchers, err := s.vouchers.GetAll(r.Context())
	if err != nil {
		s.logger.Error("Failed to list vouchers", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if vouchers == nil {
		vouchers = []*models.Voucher{}
	}
	writeJSON(w, http.StatusOK, vouchers)
}

// handleCreateVoucher inserts one voucher. The status is forced to Available
// no matter what the caller sent.
func (s *Server) handleCreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req models.VoucherCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := models.ValidateVoucherCreate(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Status = models.VoucherStatusAvailable

	created, err := s.vouchers.Create(r.Context(), &req)
	if err != nil {
		s.logger.Error("Failed to create voucher", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleListDistributions returns the audit log, newest issuance first.
func (s *Server) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	dists, err := s.distributions.GetAll(r.Context())
	if err != nil {
		s.logger.Error("Failed to list distributions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dists == nil {
		dists = []*models.Distribution{}
	}
	writeJSON(w, http.StatusOK, dists)
}

// handleStats serves the derived dashboard counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Snapshot(r.Context(), s.clock.Now().UTC())
	if err != nil {
		s.logger.Error("Failed to compute stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
