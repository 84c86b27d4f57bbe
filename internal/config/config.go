// Package config reads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vaughan-dsouza/blogly/internal/models"
)

type Config struct {
	Port            string
	DatabaseURL     string
	ShutdownTimeout time.Duration
	DefaultImageURL string
	MetricsEnabled  bool

	DB  DBConfig
	Log LogConfig
}

type DBConfig struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// LogConfig controls the optional rotating log file. File empty means stdout only.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load builds a Config from the process environment.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:            env("PORT", "4000"),
		DatabaseURL:     env("DATABASE_URL", ""),
		DefaultImageURL: env("DEFAULT_IMAGE_URL", models.DefaultImageURL),
		Log:             LogConfig{File: env("LOG_FILE", "")},
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required")
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", env("SHUTDOWN_TIMEOUT", "5s")); err != nil {
		return nil, err
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(env("METRICS_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("config: METRICS_ENABLED: %w", err)
	}

	ints := []struct {
		key string
		def string
		dst *int
	}{
		{"DB_MAX_OPEN", "25", &cfg.DB.MaxOpen},
		{"DB_MAX_IDLE", "25", &cfg.DB.MaxIdle},
		{"LOG_MAX_SIZE_MB", "50", &cfg.Log.MaxSizeMB},
		{"LOG_MAX_BACKUPS", "5", &cfg.Log.MaxBackups},
		{"LOG_MAX_AGE_DAYS", "28", &cfg.Log.MaxAgeDays},
	}
	for _, i := range ints {
		n, err := strconv.Atoi(env(i.key, i.def))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", i.key, err)
		}
		*i.dst = n
	}

	// seconds, as in the pool settings of earlier deployments
	lifetime, err := strconv.Atoi(env("DB_MAX_LIFETIME", "300"))
	if err != nil {
		return nil, fmt.Errorf("config: DB_MAX_LIFETIME: %w", err)
	}
	cfg.DB.MaxLifetime = time.Duration(lifetime) * time.Second

	return cfg, nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
