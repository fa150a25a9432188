// Package handlers provides HTTP handlers for the voucher distribution service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/davmoha/voucher-automation/internal/models"
)

// ClassStore is the class session surface the handlers need.
type ClassStore interface {
	Create(ctx context.Context, class *models.ClassSessionCreate) (*models.ClassSession, error)
	GetAll(ctx context.Context) ([]*models.ClassSession, error)
}

// VoucherStore is the voucher surface the handlers need.
type VoucherStore interface {
	Create(ctx context.Context, voucher *models.VoucherCreate) (*models.Voucher, error)
	GetAll(ctx context.Context) ([]*models.Voucher, error)
}

// DistributionStore is the distribution surface the handlers need.
type DistributionStore interface {
	GetAll(ctx context.Context) ([]*models.Distribution, error)
}

// StatsStore derives the dashboard counters.
type StatsStore interface {
	Snapshot(ctx context.Context, now time.Time) (*models.Stats, error)
}

// HealthChecker reports backing-store connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server holds all handler dependencies.
type Server struct {
	classes       ClassStore
	vouchers      VoucherStore
	distributions DistributionStore
	stats         StatsStore
	distributor   Distributor
	health        HealthChecker
	clock         clockwork.Clock
	logger        *zap.Logger
}

// NewServer creates a new handler server with its dependencies injected.
func NewServer(classes ClassStore, vouchers VoucherStore, distributions DistributionStore, stats StatsStore, dist Distributor, health HealthChecker, clock clockwork.Clock, logger *zap.Logger) *Server {
	return &Server{
		classes:       classes,
		vouchers:      vouchers,
		distributions: distributions,
		stats:         stats,
		distributor:   dist,
		health:        health,
		clock:         clock,
		logger:        logger,
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error             string `json:"error"`
	CertificationType string `json:"certification_type,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
