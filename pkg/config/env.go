// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvironmentConfig carries deployment-level settings read from the
// environment, separate from the authored race configuration file.
type EnvironmentConfig struct {
	UpdateRate       int           // variable-rate input frames per second
	FixedTimestep    float64       // seconds per physics step
	MaxAircraft      int           // aircraft admitted into one session
	CountdownSeconds float64       // default per-gate time budget
	ShutdownTimeout  time.Duration // grace period for stopping the loop

	// Resource supervision limits for the headless runner.
	MaxMemoryMB           int64
	MaxGoroutines         int
	ResourceCheckInterval time.Duration
	HealthPort            int
}

// Environment variable names recognized by LoadConfigFromEnv.
const (
	EnvUpdateRate            = "AIRRACE_UPDATE_RATE"
	EnvFixedTimestep         = "AIRRACE_FIXED_TIMESTEP"
	EnvMaxAircraft           = "AIRRACE_MAX_AIRCRAFT"
	EnvCountdownSeconds      = "AIRRACE_COUNTDOWN_SECONDS"
	EnvShutdownTimeout       = "AIRRACE_SHUTDOWN_TIMEOUT"
	EnvMaxMemoryMB           = "AIRRACE_MAX_MEMORY_MB"
	EnvMaxGoroutines         = "AIRRACE_MAX_GOROUTINES"
	EnvResourceCheckInterval = "AIRRACE_RESOURCE_CHECK_INTERVAL"
	EnvHealthPort            = "AIRRACE_HEALTH_PORT"
)

// LoadConfigFromEnv reads the environment configuration, applying defaults
// for unset variables and validating the result.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	cfg := &EnvironmentConfig{
		UpdateRate:            60,
		FixedTimestep:         0.02,
		MaxAircraft:           8,
		CountdownSeconds:      30,
		ShutdownTimeout:       10 * time.Second,
		MaxMemoryMB:           500,
		MaxGoroutines:         100,
		ResourceCheckInterval: 30 * time.Second,
		HealthPort:            8080,
	}

	var err error
	if cfg.UpdateRate, err = getEnvInt(EnvUpdateRate, cfg.UpdateRate); err != nil {
		return nil, err
	}
	if cfg.FixedTimestep, err = getEnvFloat(EnvFixedTimestep, cfg.FixedTimestep); err != nil {
		return nil, err
	}
	if cfg.MaxAircraft, err = getEnvInt(EnvMaxAircraft, cfg.MaxAircraft); err != nil {
		return nil, err
	}
	if cfg.CountdownSeconds, err = getEnvFloat(EnvCountdownSeconds, cfg.CountdownSeconds); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration(EnvShutdownTimeout, cfg.ShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.MaxMemoryMB, err = getEnvInt64(EnvMaxMemoryMB, cfg.MaxMemoryMB); err != nil {
		return nil, err
	}
	if cfg.MaxGoroutines, err = getEnvInt(EnvMaxGoroutines, cfg.MaxGoroutines); err != nil {
		return nil, err
	}
	if cfg.ResourceCheckInterval, err = getEnvDuration(EnvResourceCheckInterval, cfg.ResourceCheckInterval); err != nil {
		return nil, err
	}
	if cfg.HealthPort, err = getEnvInt(EnvHealthPort, cfg.HealthPort); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *EnvironmentConfig) Validate() error {
	if c.UpdateRate <= 0 {
		return fmt.Errorf("update rate must be positive, got %d", c.UpdateRate)
	}
	if c.FixedTimestep <= 0 || c.FixedTimestep > 0.1 {
		return fmt.Errorf("fixed timestep must be in (0, 0.1] seconds, got %g", c.FixedTimestep)
	}
	if c.MaxAircraft <= 0 {
		return fmt.Errorf("max aircraft must be positive, got %d", c.MaxAircraft)
	}
	if c.CountdownSeconds <= 0 {
		return fmt.Errorf("countdown seconds must be positive, got %g", c.CountdownSeconds)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if c.MaxMemoryMB <= 0 {
		return fmt.Errorf("max memory must be positive, got %dMB", c.MaxMemoryMB)
	}
	if c.MaxGoroutines <= 0 {
		return fmt.Errorf("max goroutines must be positive, got %d", c.MaxGoroutines)
	}
	if c.ResourceCheckInterval <= 0 {
		return fmt.Errorf("resource check interval must be positive, got %v", c.ResourceCheckInterval)
	}
	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("health port must be in (0, 65535], got %d", c.HealthPort)
	}
	return nil
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return v, nil
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return v, nil
}
