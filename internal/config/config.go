package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxBlobBytes is Bluesky's blob size limit for post images.
const DefaultMaxBlobBytes = 976560

// Config holds all configuration for the application.
type Config struct {
	BskyBaseURL        string
	BskyIdentifier     string
	BskyAppPassword    string
	BskyTimeout        time.Duration
	DBPath             string
	MirrorPath         string
	TickInterval       time.Duration
	LinkPreviewTimeout time.Duration
	MaxBlobBytes       int
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		BskyBaseURL:     strings.TrimRight(getEnv("BSKY_BASE_URL", "https://bsky.social"), "/"),
		BskyIdentifier:  getEnv("BSKY_IDENTIFIER", ""),
		BskyAppPassword: getEnv("BSKY_APP_PASSWORD", ""),
		DBPath:          getEnv("DB_PATH", "./data/skynotes.db"),
		MirrorPath:      getEnv("MIRROR_PATH", "./data/mirror.bolt"),
		APIPort:         getEnv("API_PORT", "9000"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.BskyTimeout, err = getDuration("BSKY_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TickInterval, err = getDuration("TICK_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.TickInterval < time.Second {
		return nil, fmt.Errorf("TICK_INTERVAL must be at least 1s")
	}
	if cfg.LinkPreviewTimeout, err = getDuration("LINK_PREVIEW_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	maxBlob := getEnv("MAX_BLOB_BYTES", strconv.Itoa(DefaultMaxBlobBytes))
	cfg.MaxBlobBytes, err = strconv.Atoi(maxBlob)
	if err != nil {
		return nil, fmt.Errorf("MAX_BLOB_BYTES must be a valid integer: %w", err)
	}
	if cfg.MaxBlobBytes <= 0 {
		return nil, fmt.Errorf("MAX_BLOB_BYTES must be greater than 0")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if (cfg.BskyIdentifier == "") != (cfg.BskyAppPassword == "") {
		return nil, fmt.Errorf("BSKY_IDENTIFIER and BSKY_APP_PASSWORD must be set together")
	}

	for _, path := range []string{cfg.DBPath, cfg.MirrorPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	return d, nil
}
