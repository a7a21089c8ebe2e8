package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRADE_API_BASE_URL", "https://api.example.com/v1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5, cfg.Batch.ChunkSize)
	assert.Equal(t, 50*time.Millisecond, cfg.Batch.Pace)
	assert.Equal(t, 100, cfg.Caches.DetailMaxEntries)
	assert.Equal(t, 32, cfg.Caches.ListSize)
	assert.Equal(t, 30*time.Second, cfg.Caches.ListTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TRADE_API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("CHUNK_SIZE", "10")
	t.Setenv("CHUNK_PACE_MS", "125")
	t.Setenv("DETAIL_CACHE_MAX", "500")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.Batch.ChunkSize)
	assert.Equal(t, 125*time.Millisecond, cfg.Batch.Pace)
	assert.Equal(t, 500, cfg.Caches.DetailMaxEntries)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	t.Setenv("TRADE_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRADE_API_BASE_URL")
}

func TestLoad_InvalidChunkSize(t *testing.T) {
	t.Setenv("TRADE_API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("CHUNK_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHUNK_SIZE")
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("TRADE_API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Batch.ChunkSize)
}
