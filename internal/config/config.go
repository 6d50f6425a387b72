package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	ListenAddr string

	// Platform API the screens are fed from.
	APIBaseURL string
	StreamURL  string

	// Identity this device is tracking orders for.
	UserPhone string

	PollInterval time.Duration
	HTTPTimeout  time.Duration

	// Snapshot store: "memory" or "mysql" (DB_DSN required for mysql).
	StorageDriver string
	DBDSN         string
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:    envOr("LISTEN_ADDR", ":8080"),
		APIBaseURL:    envOr("API_BASE_URL", "http://127.0.0.1:8000"),
		StreamURL:     envOr("STREAM_URL", "ws://127.0.0.1:8001"),
		UserPhone:     os.Getenv("USER_PHONE"),
		PollInterval:  envDurationOr("POLL_INTERVAL", 3*time.Second),
		HTTPTimeout:   envDurationOr("HTTP_TIMEOUT", 10*time.Second),
		StorageDriver: envOr("STORAGE_DRIVER", "memory"),
		DBDSN:         os.Getenv("DB_DSN"),
	}

	if cfg.StorageDriver == "mysql" && cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is required when STORAGE_DRIVER=mysql")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("POLL_INTERVAL must be positive")
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDurationOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// plain seconds also accepted ("POLL_INTERVAL=3")
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
