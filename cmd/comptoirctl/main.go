// Command comptoirctl runs maintenance tasks against the bookkeeping database:
// schema migrations, token issuance, delivery imports and daily reports.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
