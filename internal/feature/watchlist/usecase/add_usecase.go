package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"golang.org/x/sync/singleflight"

	quoteentity "stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/shared/ratelimiter"
	"stockhawk/internal/shared/ticker"
)

// QuoteLookup validates a symbol against the quote service.
// It returns (nil, nil) when the service has no record.
type QuoteLookup interface {
	GetQuote(ctx context.Context, symbol string) (*quoteentity.Quote, error)
}

// SymbolAdder persists a symbol into the watched set.
type SymbolAdder interface {
	AddSymbol(ctx context.Context, symbol string) error
}

// SyncTrigger requests an immediate sync without waiting for it.
type SyncTrigger interface {
	TriggerNow()
}

// AddResult describes a symbol accepted into the watched set.
type AddResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// AddUsecase is the add-symbol flow: validate, persist, then sync.
type AddUsecase struct {
	lookup  QuoteLookup
	prefs   SymbolAdder
	trigger SyncTrigger
	limiter ratelimiter.Limiter

	// 同じ銘柄の連続送信は1回の検証にまとめる
	group singleflight.Group
}

// NewAddUsecase creates an AddUsecase. limiter is the one the sync job uses,
// so checks and syncs share the quote-service budget.
func NewAddUsecase(lookup QuoteLookup, prefs SymbolAdder, trigger SyncTrigger, limiter ratelimiter.Limiter) *AddUsecase {
	return &AddUsecase{lookup: lookup, prefs: prefs, trigger: trigger, limiter: limiter}
}

// Add validates raw with a single quote-service call and, when the service
// knows the symbol, adds it to the watched set and triggers a sync.
// A call that cannot reach the service fails with ErrNetworkUnavailable.
// Concurrent calls for the same normalized symbol share one result.
func (u *AddUsecase) Add(ctx context.Context, raw string) (AddResult, error) {
	symbol := ticker.Normalize(raw)
	if symbol == "" {
		return AddResult{}, ErrInvalidSymbol
	}

	v, err, shared := u.group.Do(symbol, func() (any, error) {
		return u.add(ctx, symbol)
	})
	if shared {
		slog.Debug("add request shared an in-flight check", "symbol", symbol)
	}
	if err != nil {
		return AddResult{}, err
	}
	return v.(AddResult), nil
}

func (u *AddUsecase) add(ctx context.Context, symbol string) (AddResult, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return AddResult{}, err
	}
	q, err := u.lookup.GetQuote(ctx, symbol)
	if err != nil {
		slog.Warn("symbol check failed", "symbol", symbol, "error", err)
		var netErr net.Error
		if errors.As(err, &netErr) {
			return AddResult{}, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
		}
		return AddResult{}, fmt.Errorf("%w: %v", ErrQuoteService, err)
	}
	if q == nil || q.Name == "" {
		return AddResult{}, ErrSymbolNotFound
	}

	if err := u.prefs.AddSymbol(ctx, symbol); err != nil {
		return AddResult{}, fmt.Errorf("add %s: %w", symbol, err)
	}
	u.trigger.TriggerNow()
	slog.Info("symbol added", "symbol", symbol, "name", q.Name)
	return AddResult{Symbol: symbol, Name: q.Name}, nil
}
