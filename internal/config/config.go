// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the HTTP server and its collaborators.
type Config struct {
	Port      int    `env:"SCYTHE_PORT"       envDefault:"8080"`
	DBPath    string `env:"SCYTHE_DB_PATH"    envDefault:"scythe.db"`
	LogLevel  string `env:"SCYTHE_LOG_LEVEL"  envDefault:"info"`
	QRSize    int    `env:"SCYTHE_QR_SIZE"    envDefault:"256"`
	PublicURL string `env:"SCYTHE_PUBLIC_URL"` // base for join links; the request host when empty

	// TableIdle closes a shared table once it has had no client this long.
	TableIdle time.Duration `env:"SCYTHE_TABLE_IDLE" envDefault:"2m"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.QRSize < 64 {
		return fmt.Errorf("qr size %d too small", c.QRSize)
	}
	if c.TableIdle < 0 {
		return fmt.Errorf("table idle timeout %s is negative", c.TableIdle)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
