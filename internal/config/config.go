// Package config loads runtime configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// StoreConfig configures the embedded document store
type StoreConfig struct {
	DataDir    string `envconfig:"STORE_DATA_DIR" default:"data"`
	SyncWrites bool   `envconfig:"STORE_SYNC_WRITES" default:"true"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	return &cfg, nil
}

// Addr returns the host:port the server listens on
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
