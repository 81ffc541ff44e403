// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	CORSOrigin          string
	GeminiAPIKey        string
	TextModel           string
	ImageModel          string
	CredentialSelection bool
	SessionSecret       string
	SessionIdleTimeout  time.Duration
	SessionReapInterval time.Duration
	UsageDSN            string
	MockDelayScale      float64
	LogLevel            slog.Level
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:         envOr(getenv, "PORT", "8080"),
		CORSOrigin:   envOr(getenv, "CORS_ORIGIN", "http://localhost:5173"),
		GeminiAPIKey: getenv("GEMINI_API_KEY"),
		TextModel:    getenv("GEMINI_TEXT_MODEL"),
		ImageModel:   getenv("GEMINI_IMAGE_MODEL"),
		UsageDSN:     getenv("DB_DSN_USAGE"),
	}

	var err error
	if cfg.CredentialSelection, err = parseBool(getenv, "CREDENTIAL_SELECTION_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTimeout, err = parseDuration(getenv, "SESSION_IDLE_TIMEOUT", 2*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SessionReapInterval, err = parseDuration(getenv, "SESSION_REAP_INTERVAL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.MockDelayScale, err = parseFloat(getenv, "MOCK_DELAY_SCALE", 1); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = parseLevel(getenv("LOG_LEVEL")); err != nil {
		return Config{}, err
	}

	cfg.SessionSecret = getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseFloat(getenv func(string) string, key string, def float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func parseLevel(v string) (slog.Level, error) {
	switch strings.ToLower(v) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", v)
}
