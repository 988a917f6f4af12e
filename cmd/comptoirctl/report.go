package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportDailyCmd)

	reportDailyCmd.Flags().StringP("day", "d", "", "Business day as YYYY-MM-DD (today when empty)")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print bookkeeping reports",
}

var reportDailyCmd = &cobra.Command{
	Use:       "daily boutique|salon",
	Short:     "Print the daily summary for the boutique or the salon as JSON",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"boutique", "salon"},
	RunE:      runReportDaily,
}

func runReportDaily(cmd *cobra.Command, args []string) error {
	db, dialect, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	svcs, err := services(db, dialect)
	if err != nil {
		return err
	}

	day := svcs.Calendar.Today()

	if s, _ := cmd.Flags().GetString("day"); s != "" {
		if day, err = time.Parse(time.DateOnly, s); err != nil {
			return fmt.Errorf("parsing day: %w", err)
		}
	}

	var v any
	if args[0] == "salon" {
		v, err = svcs.Reports.SalonDaily(cmd.Context(), day)
	} else {
		v, err = svcs.Reports.BoutiqueDaily(cmd.Context(), day)
	}

	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
