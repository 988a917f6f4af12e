package main

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/comptoir/internal/app"
	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/config"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "comptoirctl",
	Short:        "Administer the boutique and salon bookkeeping database",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		return nil
	},
}

func openDB() (*sql.DB, database.Dialect, error) {
	dialect := database.Dialect(cfg.DB.Driver)

	db, err := database.New(dialect, cfg.ConnectionString())
	if err != nil {
		return nil, "", fmt.Errorf("connecting to database: %w", err)
	}

	return db, dialect, nil
}

func services(db *sql.DB, dialect database.Dialect) (*app.Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return app.NewServices(db, dialect, calendar.New(loc), app.Settings{
		LowStockThreshold: cfg.Stock.LowThreshold,
		ReceiptsToken:     cfg.Receipts.Token,
	}), nil
}
