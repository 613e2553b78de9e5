// Package config loads the application configuration from the environment.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration of stockhawk.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR, default=:8080"`

	DB     DBConfig    `env:", prefix=DB_"`
	Redis  RedisConfig `env:", prefix=REDIS_"`
	Cache  CacheConfig
	Quotes QuotesConfig
	Sync   SyncConfig
	Auth   AuthConfig
	Log    LogConfig `env:", prefix=LOG_"`

	RunMigrations bool `env:"RUN_MIGRATIONS, default=true"`
}

// DBConfig selects and configures the SQL backend.
type DBConfig struct {
	Driver   string `env:"DRIVER, default=sqlite"` // sqlite or postgres
	Path     string `env:"PATH, default=./stockhawk.db"`
	Host     string `env:"HOST, default=localhost"`
	Port     string `env:"PORT, default=5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME, default=stockhawk"`
	SSLMode  string `env:"SSLMODE, default=disable"`
}

// RedisConfig configures the optional Redis connection. An empty host disables Redis.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT, default=6379"`
	Password string `env:"PASSWORD"`
}

// CacheConfig configures the Redis read cache in front of the quote table.
type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL, default=5m"`
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// QuotesConfig configures the Twelve Data client.
type QuotesConfig struct {
	APIKey  string        `env:"TWELVE_DATA_API_KEY"`
	BaseURL string        `env:"TWELVE_DATA_BASE_URL, default=https://api.twelvedata.com"`
	Timeout time.Duration `env:"QUOTE_TIMEOUT, default=10s"`
}

// SyncConfig configures the quote sync job.
type SyncConfig struct {
	Period         time.Duration `env:"SYNC_PERIOD, default=5m"`
	RatePerMinute  int           `env:"RATE_LIMIT_PER_MINUTE, default=8"`
	DefaultSymbols []string      `env:"DEFAULT_SYMBOLS, default=AAPL,GOOG,MSFT,META,AMZN"`
}

// AuthConfig configures optional bearer token auth.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL, default=720h"`
}

// Enabled reports whether API routes require a token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=text"` // text or json
	File   string `env:"FILE"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using system environment variables")
	}
	return Process(ctx, envconfig.OsLookuper())
}

// Process parses configuration from the given lookuper.
func Process(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	for i, s := range cfg.Sync.DefaultSymbols {
		cfg.Sync.DefaultSymbols[i] = strings.TrimSpace(s)
	}
	return cfg, nil
}
