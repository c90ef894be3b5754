package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type config struct {
	Production        bool          `env:"PRODUCTION" envDefault:"false"`
	Port              string        `env:"PORT" envDefault:"80"`
	DBDriver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"jtxboard.db"`
	RedisUrl          string        `env:"REDIS_URL" envDefault:""`
	LockTTL           time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	Secret            string        `env:"SECRET" envDefault:""`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	Timezone          string        `env:"TIMEZONE" envDefault:"Local"`
	MaxRecurInstances int           `env:"MAX_RECUR_INSTANCES" envDefault:"1000"`
	SweepInterval     time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
}

var (
	conf     config
	location = time.Local
)

// Load reads a .env file when one exists and parses the environment.
// Variables already set take precedence over the file.
func Load() error {
	_ = godotenv.Load()

	var c config
	if err := env.Parse(&c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.MaxRecurInstances <= 0 {
		return fmt.Errorf("MAX_RECUR_INSTANCES must be positive, got %d", c.MaxRecurInstances)
	}

	if c.SweepInterval < 0 {
		return fmt.Errorf("SWEEP_INTERVAL must not be negative, got %s", c.SweepInterval)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load TIMEZONE %q: %w", c.Timezone, err)
	}

	conf = c
	location = loc
	return nil
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func DBDriver() string {
	return conf.DBDriver
}

func DatabaseURL() string {
	return conf.DatabaseURL
}

func RedisURL() string {
	return conf.RedisUrl
}

func LockTTL() time.Duration {
	return conf.LockTTL
}

func Secret() string {
	return conf.Secret
}

func TokenTTL() time.Duration {
	return conf.TokenTTL
}

// Location is used for floating dates and for day boundaries of list filters.
func Location() *time.Location {
	return location
}

func MaxRecurInstances() int {
	return conf.MaxRecurInstances
}

// SweepInterval is zero when the background sweep is disabled.
func SweepInterval() time.Duration {
	return conf.SweepInterval
}
