// Command medtrack is a self-hosted medication, weight and body
// measurement tracker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"medtrack/internal/adapter/postgres"
	"medtrack/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "medtrack",
	Short: "Track injections, weigh-ins and body measurements",
	Long: `medtrack keeps a single person's medication injections, weigh-ins and
body measurements in PostgreSQL and serves a local web UI with daily
checklists, adherence stats and trend insights.

Configuration comes from the environment (a .env file is loaded when
present). DATABASE_URL is required by every subcommand.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; explicit env vars win either way.
		_ = godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDB connects to the configured database. The caller owns Close.
func openDB() (*postgres.DB, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := postgres.Open(connStr)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return db, nil
}

func storesFor(db *postgres.DB) app.Stores {
	return app.Stores{
		Injections:   db,
		Weights:      db,
		Measurements: db,
		Settings:     db,
	}
}
