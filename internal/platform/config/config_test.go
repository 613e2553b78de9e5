package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "./stockhawk.db", cfg.DB.Path)
	assert.Equal(t, "https://api.twelvedata.com", cfg.Quotes.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Quotes.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Period)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT", "META", "AMZN"}, cfg.Sync.DefaultSymbols)
	assert.Empty(t, cfg.Redis.Addr(), "redis should be disabled without a host")
	assert.False(t, cfg.Auth.Enabled())
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestProcess_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"HTTP_ADDR":             ":9090",
		"DB_DRIVER":             "postgres",
		"DB_HOST":               "db.internal",
		"REDIS_HOST":            "cache.internal",
		"REDIS_PORT":            "6380",
		"SYNC_PERIOD":           "1m",
		"DEFAULT_SYMBOLS":       "TSLA, NFLX",
		"JWT_SECRET":            "s3cret",
		"TWELVE_DATA_API_KEY":   "demo",
		"LOG_FORMAT":            "json",
		"RATE_LIMIT_PER_MINUTE": "60",
		"CACHE_TTL":             "30s",
		"REDIS_CACHE_TTL":       "1h",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
	assert.Equal(t, time.Minute, cfg.Sync.Period)
	assert.Equal(t, 60, cfg.Sync.RatePerMinute)
	assert.Equal(t, []string{"TSLA", "NFLX"}, cfg.Sync.DefaultSymbols)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, "demo", cfg.Quotes.APIKey)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL, "the cache TTL key carries no REDIS_ prefix")
}

func TestProcess_InvalidDuration(t *testing.T) {
	t.Parallel()

	_, err := Process(context.Background(), envconfig.MapLookuper(map[string]string{
		"SYNC_PERIOD": "soon",
	}))
	assert.Error(t, err)
}
