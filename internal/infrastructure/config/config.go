package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Gateway GatewayConfig
	Booking BookingConfig
	Audit   AuditConfig

	Mongo MongoConfig
	Redis RedisConfig
}

// SessionConfig controls the signed session cookie and persisted state.
type SessionConfig struct {
	Secret      string        `env:"SESSION_SECRET, default=dev-session-secret"`
	TTL         time.Duration `env:"SESSION_TTL,    default=24h"`
	FlowTTL     time.Duration `env:"FLOW_TTL,       default=1h"`
	LogoutDelay time.Duration `env:"LOGOUT_DELAY,   default=1200ms"`
	Secure      bool          `env:"SESSION_SECURE, default=false"`
}

type GatewayConfig struct {
	BaseURL string        `env:"GATEWAY_BASE_URL, default=http://localhost:3000/api"`
	Timeout time.Duration `env:"GATEWAY_TIMEOUT,  default=15s"`
}

// BookingConfig describes the business calendar. Roster labels use the
// "H:MMhs" form shown to customers.
type BookingConfig struct {
	TimeZone string   `env:"BOOKING_TIMEZONE, default=America/Argentina/Buenos_Aires"`
	Roster   []string `env:"BOOKING_ROSTER,   default=9:30hs,10:00hs,11:30hs,12:30hs,15:00hs,17:30hs"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=carwash_frontend"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Location resolves the booking time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Booking.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("booking timezone %q: %w", c.Booking.TimeZone, err)
	}
	return loc, nil
}

// Roster parses the configured slot labels.
func (c *Config) Roster() ([]domain.Slot, error) {
	return domain.ParseRoster(c.Booking.Roster)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}

// LoadWith reads configuration from l and validates derived settings.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if _, err := cfg.Roster(); err != nil {
		return nil, fmt.Errorf("booking roster: %w", err)
	}
	if cfg.IsProduction() && cfg.Session.Secret == "dev-session-secret" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return &cfg, nil
}
