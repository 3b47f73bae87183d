// config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           int           `env:"PORT" envDefault:"8000"`
	CatalogBaseURL string        `env:"CATALOG_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`
	CatalogMaxID   int           `env:"CATALOG_MAX_ID" envDefault:"151"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	StaticDir      string        `env:"STATIC_DIR" envDefault:"./static"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	StatsInterval  time.Duration `env:"SESSION_STATS_INTERVAL" envDefault:"5m"`
	RandomSeed     int64         `env:"RANDOM_SEED" envDefault:"0"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL must not be empty")
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got %s", c.CatalogTimeout)
	}
	if c.CatalogMaxID < 1 {
		return fmt.Errorf("CATALOG_MAX_ID must be at least 1, got %d", c.CatalogMaxID)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("SESSION_STATS_INTERVAL must not be negative, got %s", c.StatsInterval)
	}
	return nil
}

// WildcardOrigins reports whether CORS is open to any origin.
func (c *Config) WildcardOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}
