package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Config holds the engine settings that can be changed from the environment.
type Config struct {
	// LockTimeout bounds how long a dispatch waits for a busy registry before it reports
	// a deadlock. Zero waits forever.
	LockTimeout time.Duration
	LogLevel    charmlog.Level
}

// Environment variables read by ConfigFromEnv.
const (
	EnvLockTimeout = "EXPECTO_LOCK_TIMEOUT"
	EnvLogLevel    = "EXPECTO_LOG_LEVEL"
)

// DefaultLockTimeout is the lock timeout used when none is configured.
const DefaultLockTimeout = 2 * time.Second

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LockTimeout: DefaultLockTimeout,
		LogLevel:    charmlog.WarnLevel,
	}
}

// ConfigFromEnv overlays the values found through getenv on DefaultConfig.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if raw := strings.TrimSpace(getenv(EnvLockTimeout)); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLockTimeout, err)
		}

		if timeout < 0 {
			return cfg, fmt.Errorf("%s: negative timeout %s", EnvLockTimeout, raw)
		}

		cfg.LockTimeout = timeout
	}

	if raw := strings.TrimSpace(getenv(EnvLogLevel)); raw != "" {
		level, err := charmlog.ParseLevel(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}

		cfg.LogLevel = level
	}

	return cfg, nil
}

// processConfig reads the process environment, falling back to the defaults when it is invalid.
func processConfig() Config {
	cfg, err := ConfigFromEnv(os.Getenv)
	if err != nil {
		charmlog.Warn("ignoring invalid expecto configuration", "err", err)

		return DefaultConfig()
	}

	return cfg
}

func newLogger(cfg Config, name string) *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:  cfg.LogLevel,
		Prefix: name,
	})
}
