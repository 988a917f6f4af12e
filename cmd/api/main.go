package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/comptoir/internal/app"
	"github.com/MrJamesThe3rd/comptoir/internal/auth"
	"github.com/MrJamesThe3rd/comptoir/internal/calendar"
	"github.com/MrJamesThe3rd/comptoir/internal/config"
	"github.com/MrJamesThe3rd/comptoir/internal/database"
	comptoirHttp "github.com/MrJamesThe3rd/comptoir/internal/http"
	"github.com/MrJamesThe3rd/comptoir/internal/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Auth.Secret == "" {
		return errors.New("AUTH_SECRET must be set")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.App.Name, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("initialising tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			slog.Error("failed to flush traces", "error", err)
		}
	}()

	dialect := database.Dialect(cfg.DB.Driver)

	db, err := database.New(dialect, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db, dialect); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	svcs := app.NewServices(db, dialect, calendar.New(loc), app.Settings{
		LowStockThreshold: cfg.Stock.LowThreshold,
		ReceiptsToken:     cfg.Receipts.Token,
	})

	router := comptoirHttp.New(svcs.Handlers(), comptoirHttp.Options{
		Issuer:         auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL),
		DB:             db,
		AllowedOrigins: cfg.Server.Origins,
		Timeout:        cfg.Server.Timeout,
		Metrics:        cfg.Telemetry.Metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "driver", dialect, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
