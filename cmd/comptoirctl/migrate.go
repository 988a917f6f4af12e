package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/comptoir/internal/database"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db, dialect); err != nil {
			return err
		}

		slog.Info("migrations applied", "driver", dialect)

		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Rollback(db, dialect); err != nil {
			return err
		}

		slog.Info("migrations rolled back", "driver", dialect)

		return nil
	},
}
