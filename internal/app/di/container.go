package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	boardusecase "stockhawk/internal/feature/board/usecase"
	quoteadapters "stockhawk/internal/feature/quotes/adapters"
	quoteusecase "stockhawk/internal/feature/quotes/usecase"
	watchusecase "stockhawk/internal/feature/watchlist/usecase"
	"stockhawk/internal/platform/cache"
	"stockhawk/internal/platform/config"
	infradb "stockhawk/internal/platform/db"
	"stockhawk/internal/platform/externalapi/twelvedata"
	infrahttp "stockhawk/internal/platform/http"
	platformhandler "stockhawk/internal/platform/http/handler"
	"stockhawk/internal/platform/netcheck"
	"stockhawk/internal/platform/notify"
	infraredis "stockhawk/internal/platform/redis"
	"stockhawk/internal/shared/ratelimiter"
)

// Container holds every wired component of the service.
type Container struct {
	Config config.Config
	DB     *gorm.DB
	Redis  *redis.Client // nil when Redis is not configured

	Hub         *notify.Hub
	Quotes      quoteusecase.QuoteRepository
	Preferences watchusecase.PreferenceRepository
	QuoteClient *twelvedata.Client
	Checker     *netcheck.Checker

	Sync       *quoteusecase.SyncUsecase
	Scheduler  *quoteusecase.Scheduler
	History    *quoteusecase.HistoryUsecase
	Preference *watchusecase.PreferenceUsecase
	Add        *watchusecase.AddUsecase
	Board      *boardusecase.BoardUsecase

	// 同期の書き込みと銘柄削除で共有するロック
	quoteWrites sync.Mutex
}

// Build opens the database and Redis (if configured) and wires everything.
// A Redis failure is logged and the service runs without it.
func Build(ctx context.Context, cfg config.Config) (*Container, error) {
	db, err := infradb.OpenDB(cfg.DB, cfg.RunMigrations)
	if err != nil {
		return nil, err
	}

	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}

	return Wire(cfg, db, rdb), nil
}

// Wire builds the component graph on top of already opened stores.
func Wire(cfg config.Config, db *gorm.DB, rdb *redis.Client) *Container {
	c := &Container{Config: cfg, DB: db, Redis: rdb, Hub: notify.NewHub()}

	// Repository (Redisキャッシュでラップ)
	c.Quotes = cache.NewCachingQuoteRepository(rdb, cfg.Cache.TTL, quoteadapters.NewQuoteRepository(db), "quotes")
	c.Preferences = NewPreferenceRepository(rdb, db)

	// External
	c.QuoteClient = NewQuoteClient(cfg.Quotes)
	c.Checker = netcheck.NewChecker(infrahttp.NewHTTPClient(cfg.Quotes.Timeout), cfg.Quotes.BaseURL)
	limiter := ratelimiter.NewRateLimiter(cfg.Sync.RatePerMinute, time.Minute)

	// Usecase (Twelve Dataへの全リクエストが同じlimiterを通る)
	c.Sync = quoteusecase.NewSyncUsecase(c.Preferences, c.QuoteClient, c.Quotes, limiter, c.Hub, &c.quoteWrites)
	c.Scheduler = quoteusecase.NewScheduler(c.Sync, cfg.Sync.Period)
	c.History = quoteusecase.NewHistoryUsecase(c.Quotes)
	c.Preference = watchusecase.NewPreferenceUsecase(c.Preferences)
	c.Add = watchusecase.NewAddUsecase(c.QuoteClient, c.Preferences, c.Scheduler, limiter)
	c.Board = boardusecase.NewBoardUsecase(c.Quotes, c.Preferences, c.Scheduler, c.Checker, c.Hub, &c.quoteWrites)

	return c
}

// Probes returns the health checks for the stores in use.
func (c *Container) Probes() map[string]platformhandler.Probe {
	probes := map[string]platformhandler.Probe{
		"db": func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.Redis != nil {
		probes["redis"] = func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}
	}
	return probes
}

// Close releases the database and Redis connections.
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close db: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
