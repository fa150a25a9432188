// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"net/http"
	"time"
)

// healthResponse is the response structure for health checks.
type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database,omitempty"`
}

// handleHealth reports service and database health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "healthy",
		Timestamp: s.clock.Now().UTC().Format(time.RFC3339),
	}

	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			resp.Database = "disconnected"
		} else {
			resp.Database = "connected"
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
