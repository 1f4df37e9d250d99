package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	RemoteSyncEnabled  bool
	RemoteBaseURL      string
	DataDir            string
	HealthTimeout      time.Duration
	CreateTimeout      time.Duration
	LogLevel           string
	ForceTextInput     bool
	BindAddress        string
	RequireBearerToken bool
	BearerToken        string
}

func Load() (Config, error) {
	cfg := Config{
		RemoteSyncEnabled:  getenvBool("AA_REMOTE_SYNC", true),
		RemoteBaseURL:      getenvDefault("AA_REMOTE_BASE_URL", "http://127.0.0.1:5000"),
		DataDir:            getenvDefault("AA_DATA_DIR", "."),
		HealthTimeout:      getenvDuration("AA_HEALTH_TIMEOUT", 2*time.Second),
		CreateTimeout:      getenvDuration("AA_CREATE_TIMEOUT", 5*time.Second),
		LogLevel:           getenvDefault("AA_LOG_LEVEL", "info"),
		ForceTextInput:     getenvBool("AA_FORCE_TEXT", false),
		BindAddress:        getenvDefault("AA_BIND_ADDRESS", "127.0.0.1:5000"),
		RequireBearerToken: getenvBool("AA_REQUIRE_TOKEN", false),
		BearerToken:        strings.TrimSpace(os.Getenv("AA_BEARER_TOKEN")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RemoteSyncEnabled && c.RemoteBaseURL == "" {
		return errors.New("AA_REMOTE_BASE_URL is required when remote sync is enabled")
	}
	if c.DataDir == "" {
		return errors.New("data dir is required")
	}
	if c.HealthTimeout <= 0 || c.CreateTimeout <= 0 {
		return errors.New("timeouts must be > 0")
	}
	if c.RequireBearerToken && c.BearerToken == "" {
		return errors.New("AA_BEARER_TOKEN is required when token auth is enabled")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// StorePath is the structured appointment store.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "appointments.json")
}

// AuditPath is the append-only booking log.
func (c Config) AuditPath() string {
	return filepath.Join(c.DataDir, "appointments.md")
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
