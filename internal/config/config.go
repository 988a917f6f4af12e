package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Comptoir"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"Africa/Kinshasa"`
	}

	DB struct {
		Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"comptoir"`
		// Path is the database file when Driver is sqlite.
		Path    string `envconfig:"DB_PATH" default:"comptoir.db"`
		Migrate bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		Origins []string      `envconfig:"SERVER_ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"12h"`
	}

	Telemetry struct {
		OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Metrics      bool   `envconfig:"METRICS_ENABLED" default:"true"`
	}

	Stock struct {
		LowThreshold int `envconfig:"STOCK_LOW_THRESHOLD" default:"2"`
	}

	Receipts struct {
		Token string `envconfig:"RECEIPTS_TOKEN"`
	}
}

func (c *Config) ConnectionString() string {
	if c.DB.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate&_time_format=sqlite",
			c.DB.Path)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location returns the business timezone used for daily and monthly rollups.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.Stock.LowThreshold < 0 {
		return nil, fmt.Errorf("STOCK_LOW_THRESHOLD must not be negative")
	}

	return &cfg, nil
}
