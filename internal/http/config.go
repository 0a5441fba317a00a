package http

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Host     string
	Timeouts struct {
		Read         time.Duration
		ReadHeader   time.Duration
		Write        time.Duration
		Idle         time.Duration
		ShutdownWait time.Duration
	}
}

func NewHTTPServerConfig() (*HTTPServerConfig, error) {
	return LoadHTTPServerConfig(`config.env`)
}

func LoadHTTPServerConfig(path string) (*HTTPServerConfig, error) {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	var errors []string
	cfg := &HTTPServerConfig{}

	cfg.Host = os.Getenv("HTTP_SERVER_HOST")
	if cfg.Host == "" {
		cfg.Host = ":8080"
	}

	// Helper function to parse duration environment variables
	parseDuration := func(envVar string, fallback time.Duration) time.Duration {
		value := os.Getenv(envVar)
		if value == "" {
			return fallback
		}
		duration, err := time.ParseDuration(value)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: invalid duration format: %v", envVar, err))
			return fallback
		}
		return duration
	}

	// An audit can spend a fetch plus two model calls, so writes get a long budget.
	cfg.Timeouts.Read = parseDuration("HTTP_APP_READ_TIMEOUT_DURATION", 15*time.Second)
	cfg.Timeouts.ReadHeader = parseDuration("HTTP_APP_READ_HEADER_TIMEOUT_DURATION", 5*time.Second)
	cfg.Timeouts.Write = parseDuration("HTTP_APP_WRITE_TIMEOUT_DURATION", 90*time.Second)
	cfg.Timeouts.Idle = parseDuration("HTTP_APP_IDLE_TIMEOUT_DURATION", 60*time.Second)
	cfg.Timeouts.ShutdownWait = parseDuration("HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", 10*time.Second)

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return cfg, nil
}
