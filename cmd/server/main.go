// Package main runs the voucher distribution HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/davmoha/voucher-automation/internal/config"
	"github.com/davmoha/voucher-automation/internal/handlers"
	"github.com/davmoha/voucher-automation/internal/services/database"
	"github.com/davmoha/voucher-automation/internal/services/distributor"
	"github.com/davmoha/voucher-automation/internal/services/ses"
	"github.com/davmoha/voucher-automation/internal/utils"
)

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	mailer, err := ses.NewService(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize SES: %v", err)
	}

	clock := clockwork.NewRealClock()
	logger := utils.GetLogger()

	classRepo := database.NewClassRepository(db)
	voucherRepo := database.NewVoucherRepository(db)
	distRepo := database.NewDistributionRepository(db)
	statsRepo := database.NewStatsRepository(db)

	dist := distributor.NewService(classRepo, voucherRepo, distRepo, mailer, clock, logger)

	server := handlers.NewServer(classRepo, voucherRepo, distRepo, statsRepo, dist, db, clock, logger)

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	log.Printf("Voucher Distribution API Server")
	log.Printf("Listening on http://localhost:%s", cfg.Port)
	log.Printf("Health: http://localhost:%s/api/health", cfg.Port)

	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
