// Database initialization script: creates the classes, vouchers, and
// distributions tables used by the voucher distribution service.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

const schema = `
CREATE TABLE IF NOT EXISTS classes (
	id BIGSERIAL PRIMARY KEY,
	certification_type TEXT NOT NULL,
	class_date DATE NOT NULL,
	class_time TEXT NOT NULL DEFAULT '',
	location_format TEXT NOT NULL DEFAULT '',
	instructor_name TEXT NOT NULL DEFAULT '',
	registration_link TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_classes_cert_date ON classes (certification_type, class_date);

CREATE TABLE IF NOT EXISTS vouchers (
	id BIGSERIAL PRIMARY KEY,
	certification_type TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'Available',
	voucher_code TEXT NOT NULL UNIQUE,
	winner_name TEXT,
	winner_email TEXT,
	date_issued TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_vouchers_cert_status ON vouchers (certification_type, status);

CREATE TABLE IF NOT EXISTS distributions (
	id BIGSERIAL PRIMARY KEY,
	winner_name TEXT NOT NULL,
	winner_email TEXT NOT NULL,
	certification_type TEXT NOT NULL,
	voucher_code TEXT NOT NULL,
	class_date DATE NOT NULL,
	date_issued TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'Sent',
	contact_id TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_distributions_date_issued ON distributions (date_issued DESC);
`

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	fmt.Println("Connecting to database...")
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	fmt.Println("Connected. Applying schema...")
	if _, err := conn.Exec(ctx, schema); err != nil {
		fmt.Printf("Failed to apply schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Schema applied: classes, vouchers, distributions")
}
