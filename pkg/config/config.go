// Package config loads dashboard configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Batch holds the detail-fetch tuning knobs. Both defaults are carried-over
// operational values, not derived from a documented trade API limit.
type Batch struct {
	ChunkSize int
	Pace      time.Duration
}

// Caches holds cache sizing.
type Caches struct {
	DetailMaxEntries int
	ListSize         int
	ListTTL          time.Duration
}

// TradeAPI holds remote endpoint settings.
type TradeAPI struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Log holds logging settings.
type Log struct {
	Level  string
	Pretty bool
}

// Config is the full dashboard configuration.
type Config struct {
	HTTPAddr string

	API    TradeAPI
	Batch  Batch
	Caches Caches
	Log    Log
}

// Load reads configuration from env/.env and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load("env/.env", ".env")

	cfg := Config{
		HTTPAddr: envDefault("HTTP_ADDR", ":8080"),

		API: TradeAPI{
			BaseURL: strings.TrimSpace(os.Getenv("TRADE_API_BASE_URL")),
			Token:   strings.TrimSpace(os.Getenv("TRADE_API_TOKEN")),
			Timeout: envDurationMS("HTTP_TIMEOUT_MS", 15*time.Second),
		},

		Batch: Batch{
			ChunkSize: envInt("CHUNK_SIZE", 5),
			Pace:      envDurationMS("CHUNK_PACE_MS", 50*time.Millisecond),
		},

		Caches: Caches{
			DetailMaxEntries: envInt("DETAIL_CACHE_MAX", 100),
			ListSize:         envInt("LIST_CACHE_SIZE", 32),
			ListTTL:          envDurationMS("LIST_CACHE_TTL_MS", 30*time.Second),
		},

		Log: Log{
			Level:  envDefault("LOG_LEVEL", "info"),
			Pretty: envBool("LOG_PRETTY", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("missing required env TRADE_API_BASE_URL")
	}
	if c.Batch.ChunkSize < 1 {
		return fmt.Errorf("CHUNK_SIZE must be >= 1 (got %d)", c.Batch.ChunkSize)
	}
	if c.Batch.Pace < 0 {
		return fmt.Errorf("CHUNK_PACE_MS must be >= 0")
	}
	if c.Caches.DetailMaxEntries < 1 {
		return fmt.Errorf("DETAIL_CACHE_MAX must be >= 1 (got %d)", c.Caches.DetailMaxEntries)
	}
	return nil
}

func envDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDurationMS(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
