// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order):
//  1. A command-line flag:      --config=/path/to/config.yaml
//  2. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// process environment first, so every env:"..." override below can also
// live there.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/aanand-mishra/student-records/internal/storage"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage    Storage    `yaml:"storage"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Storage selects and configures the backing store.
type Storage struct {
	// Driver is one of "jsonfile", "memory", "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"jsonfile"`

	// Path is the JSON document or the SQLite .db file. Unused by memory.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/students.json"`

	// Seed fills a freshly created store with two sample students.
	Seed bool `yaml:"seed" env:"STORAGE_SEED" env-default:"false"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`

	// APIPrefix is mounted in front of /students. Empty means the routes
	// are exactly /students and /students/{id}. No env-default: cleanenv
	// would replace an explicit "" from the file.
	APIPrefix string `yaml:"api_prefix" env:"HTTP_SERVER_API_PREFIX"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `yaml:"cors_origins" env:"HTTP_SERVER_CORS_ORIGINS" env-separator:","`

	// RateLimit is in requests per second; 0 disables the limiter.
	RateLimit float64 `yaml:"rate_limit" env:"HTTP_SERVER_RATE_LIMIT" env-default:"0"`
	RateBurst int     `yaml:"rate_burst" env:"HTTP_SERVER_RATE_BURST" env-default:"20"`
}

// Metrics toggles the Prometheus endpoint.
type Metrics struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

// ResolvePath picks the config path: the flag value wins over CONFIG_PATH.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CONFIG_PATH")
}

// Load reads the YAML file at path, applies env overrides and validates
// the result.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		return nil, errors.New("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values cleanenv cannot check through tags.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case storage.DriverJSONFile, storage.DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("invalid configuration: storage.path is required for driver %q", c.Storage.Driver)
		}
	case storage.DriverMemory:
	default:
		return fmt.Errorf("invalid configuration: unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Env {
	case "dev", "staging", "prod":
	default:
		return fmt.Errorf("invalid configuration: unknown env %q", c.Env)
	}

	if c.HTTPServer.RateLimit < 0 {
		return errors.New("invalid configuration: http_server.rate_limit must be >= 0")
	}

	return nil
}
