package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Chat endpoint the assistant answers on
	Chat struct {
		Endpoint string `env:"CHAT_ENDPOINT" envDefault:"http://localhost:8080/chat"`

		// Upper bound for one request, zero disables it
		Timeout time.Duration `env:"CHAT_TIMEOUT" envDefault:"60s"`
	}

	// Listing extraction and card rendering
	Listings struct {
		// Origin prefixed to short detail links
		BaseOrigin string `env:"LISTING_BASE_ORIGIN" envDefault:"https://ficha.info"`

		PlaceholderImage string `env:"LISTING_PLACEHOLDER_IMAGE" envDefault:"/static/images/property-placeholder.svg"`
	}

	// Widget gateway
	Server struct {
		Port           string   `env:"PORT" envDefault:"5250"`
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads the configuration from the environment. Variables in a
// .env file in the working directory are loaded first without overriding
// the ones already set.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
