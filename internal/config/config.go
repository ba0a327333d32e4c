package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process-level settings. Everything about the managed
// device itself lives in the persisted config store, not here.
type Config struct {
	ListenAddr      string
	DataDir         string
	DBDriver        string // "sqlite" or "postgres"
	DBDSN           string
	PollInterval    time.Duration
	RecheckLimit    int
	ScanInterval    time.Duration
	DefaultIndexURL string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// A missing .env is fine; explicit env vars always win.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      envOr("LISTEN_ADDR", ":8080"),
		DataDir:         envOr("DATA_DIR", "."),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           os.Getenv("DB_DSN"),
		DefaultIndexURL: envOr("INDEX_URL_DEFAULT", "https://index.xe.network"),
	}

	var err error
	if cfg.PollInterval, err = envDuration("POLL_INTERVAL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ScanInterval, err = envDuration("SCAN_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RecheckLimit, err = envInt("RECHECK_LIMIT", 120); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
