package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/subosito/gotenv"
)

// DefaultEnvFile is read at start when no other file is given.
const DefaultEnvFile = ".env"

// Config holds process configuration, read from the environment.
type Config struct {
	// APIKey is the OMDb credential, kept under the API name used by existing .env files.
	APIKey          string        `env:"API,required,notEmpty"`
	UpstreamURL     string        `env:"OMDB_URL"         envDefault:"http://www.omdbapi.com/"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	Addr            string        `env:"ADDR"             envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"INFO"`
	DebugMode       bool          `env:"DEBUG_MODE"`
}

// Load reads envFile into the process environment, without overriding
// variables that are already set, and parses the result. A missing envFile
// is not an error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("fail to read env file %s: %w", envFile, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("fail to parse config: %w", err)
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	return cfg, nil
}
