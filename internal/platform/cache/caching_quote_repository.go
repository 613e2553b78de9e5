// Package cache provides a Redis read-through cache for the quote table.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/feature/quotes/usecase"
)

// CachingQuoteRepository decorates a QuoteRepository with Redis caching of
// List and FindBySymbol. Cache keys embed a generation counter that every
// write bumps after it reaches the inner repository, so a read that loaded
// rows before the write can only fill a key no later reader looks up.
// A nil client disables caching.
type CachingQuoteRepository struct {
	inner     usecase.QuoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteRepository = (*CachingQuoteRepository)(nil)

// NewCachingQuoteRepository wraps inner. A non-positive ttl defaults to
// 5 minutes and an empty namespace to "quotes".
func NewCachingQuoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteRepository, namespace string) *CachingQuoteRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Upsert writes through and moves the cache to a new generation.
func (c *CachingQuoteRepository) Upsert(ctx context.Context, q entity.Quote) error {
	if err := c.inner.Upsert(ctx, q); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete writes through and moves the cache to a new generation.
func (c *CachingQuoteRepository) Delete(ctx context.Context, symbol string) error {
	if err := c.inner.Delete(ctx, symbol); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// List serves the sorted quote list from cache when possible.
func (c *CachingQuoteRepository) List(ctx context.Context) ([]entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	gen, ok := c.generation(ctx)
	if !ok {
		return c.inner.List(ctx)
	}
	key := c.listKey(gen)

	var out []entity.Quote
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindBySymbol serves one quote from cache when possible. Misses in the
// inner repository are not cached.
func (c *CachingQuoteRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Quote, error) {
	if c.rdb == nil {
		return c.inner.FindBySymbol(ctx, symbol)
	}
	gen, ok := c.generation(ctx)
	if !ok {
		return c.inner.FindBySymbol(ctx, symbol)
	}
	key := c.symbolKey(gen, symbol)

	var cached entity.Quote
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	q, err := c.inner.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, q)
	return q, nil
}

// Count is not cached; the refresh flow needs the live row count.
func (c *CachingQuoteRepository) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// get decodes key into dst. Corrupted entries are deleted.
func (c *CachingQuoteRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key, best effort.
func (c *CachingQuoteRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// generation returns the current cache generation. ok is false when Redis
// cannot be read, in which case the caller bypasses the cache.
func (c *CachingQuoteRepository) generation(ctx context.Context) (int64, bool) {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return gen, true
}

// invalidate bumps the generation; entries of older generations expire with the TTL.
func (c *CachingQuoteRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, c.generationKey()).Err(); err != nil {
		slog.Warn("quote cache invalidation failed", "error", err)
	}
}

func (c *CachingQuoteRepository) generationKey() string {
	return c.namespace + ":gen"
}

func (c *CachingQuoteRepository) listKey(gen int64) string {
	return fmt.Sprintf("%s:%d:list", c.namespace, gen)
}

func (c *CachingQuoteRepository) symbolKey(gen int64, symbol string) string {
	return fmt.Sprintf("%s:%d:symbol:%s", c.namespace, gen, safe(symbol))
}

// safe escapes characters that are problematic in Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
