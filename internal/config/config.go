package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server configuration
	Server ServerConfig

	// Upstream API configuration
	Upstream UpstreamConfig

	// Tenant routing configuration
	Tenant TenantConfig

	// Session mirror configuration
	Session SessionConfig

	// Logging configuration
	Logging LoggingConfig

	// Production toggles the Secure flag on session cookies
	Production bool
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Port string
}

// UpstreamConfig holds upstream API configuration
type UpstreamConfig struct {
	BaseURL string
	// Timeout bounds ordinary proxy calls
	Timeout time.Duration
	// UploadTimeout bounds media uploads; raised above the default
	// to accommodate large transfers
	UploadTimeout time.Duration
}

// TenantConfig holds tenant subdomain resolution configuration
type TenantConfig struct {
	RootDomain string
}

// SessionConfig holds the token mirror snapshot location
type SessionConfig struct {
	SnapshotPath string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:4000"
	}

	timeout, err := durationFromEnv("UPSTREAM_TIMEOUT_SECONDS", 30*time.Second)
	if err != nil {
		return nil, err
	}

	uploadTimeout, err := durationFromEnv("UPLOAD_TIMEOUT_SECONDS", 300*time.Second)
	if err != nil {
		return nil, err
	}

	rootDomain := os.Getenv("ROOT_DOMAIN")
	if rootDomain == "" {
		rootDomain = "localhost"
	}

	snapshotPath := os.Getenv("SESSION_SNAPSHOT_PATH")
	if snapshotPath == "" {
		snapshotPath = "tutera-session.json"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Server: ServerConfig{
			Port: port,
		},
		Upstream: UpstreamConfig{
			BaseURL:       baseURL,
			Timeout:       timeout,
			UploadTimeout: uploadTimeout,
		},
		Tenant: TenantConfig{
			RootDomain: rootDomain,
		},
		Session: SessionConfig{
			SnapshotPath: snapshotPath,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
		Production: os.Getenv("ENV") == "production",
	}, nil
}

// durationFromEnv reads a whole-second duration from the environment
func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}

	return time.Duration(seconds) * time.Second, nil
}
