package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/comptoir/internal/importer"
)

func init() {
	rootCmd.AddCommand(importDeliveryCmd)

	importDeliveryCmd.Flags().StringP("reference", "r", "", "Supplier delivery note number")
	importDeliveryCmd.Flags().String("actor", "", "Actor ID recorded on the stock movements")
}

var importDeliveryCmd = &cobra.Command{
	Use:   "import-delivery FILE",
	Short: "Receive a supplier delivery sheet into stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportDelivery,
}

func runImportDelivery(cmd *cobra.Command, args []string) error {
	reference, _ := cmd.Flags().GetString("reference")
	params := importer.Params{Reference: reference}

	if s, _ := cmd.Flags().GetString("actor"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("parsing actor: %w", err)
		}

		params.Actor = id
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening delivery sheet: %w", err)
	}
	defer f.Close()

	db, dialect, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	svcs, err := services(db, dialect)
	if err != nil {
		return err
	}

	res, importErr := svcs.Import.Import(cmd.Context(), f, params)
	if res != nil {
		out := cmd.OutOrStdout()
		for _, b := range res.Lines {
			status := "restocked"
			if b.Created {
				status = "created"
			}

			fmt.Fprintf(out, "row %d\t%s\t+%d\t(on hand %d, %s)\n", b.Row, b.Name, b.Quantity, b.OnHand, status)
		}

		fmt.Fprintf(out, "%d units across %d lines, %d new products\n", res.Units, len(res.Lines), res.Created)
	}

	return importErr
}
