package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/platform/notify"
	"stockhawk/internal/shared/ratelimiter"
	"stockhawk/internal/shared/ticker"
)

// SyncReport summarizes one pass of the sync job.
type SyncReport struct {
	Requested int      `json:"requested"`
	Updated   []string `json:"updated"`
	Failed    []string `json:"failed"`
}

// SyncUsecase refreshes the stored quote of every watched symbol.
// It never deletes rows; removal is driven by the list screen.
type SyncUsecase struct {
	symbols  SymbolSource
	service  QuoteService
	quotes   QuoteRepository
	limiter  ratelimiter.Limiter
	notifier Notifier
	now      func() time.Time

	// writes は書き込み直前の監視銘柄チェックと Upsert を、削除処理と排他にする
	writes sync.Locker
}

// NewSyncUsecase creates a SyncUsecase. writes must be the same lock the
// removal path holds while unwatching a symbol and deleting its row.
func NewSyncUsecase(symbols SymbolSource, service QuoteService, quotes QuoteRepository,
	limiter ratelimiter.Limiter, notifier Notifier, writes sync.Locker) *SyncUsecase {
	return &SyncUsecase{
		symbols:  symbols,
		service:  service,
		quotes:   quotes,
		limiter:  limiter,
		notifier: notifier,
		now:      time.Now,
		writes:   writes,
	}
}

// SyncAll fetches and upserts a quote for each watched symbol. A failure on
// one symbol is logged and skipped; only failing to read the watched set or
// a canceled context stops the batch. Observers are notified once if any
// row was written.
func (u *SyncUsecase) SyncAll(ctx context.Context) (SyncReport, error) {
	report := SyncReport{Updated: []string{}, Failed: []string{}}

	symbols, err := u.symbols.Symbols(ctx)
	if err != nil {
		return report, fmt.Errorf("load watched symbols: %w", err)
	}
	symbols = ticker.NormalizeAll(symbols)
	report.Requested = len(symbols)
	if len(symbols) == 0 {
		slog.Info("no watched symbols, nothing to sync")
		return report, nil
	}

	defer func() {
		if len(report.Updated) > 0 {
			u.notifier.Notify(notify.Event{Reason: notify.ReasonSynced, Symbols: report.Updated})
		}
	}()

	for _, s := range symbols {
		err := u.syncOne(ctx, s)
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if errors.Is(err, ErrSymbolUnwatched) {
			slog.Info("symbol removed during sync, quote not stored", "symbol", s)
			continue
		}
		if err != nil {
			// 1銘柄の失敗でバッチ全体は止めない
			slog.Error("failed to sync quote", "symbol", s, "error", err)
			report.Failed = append(report.Failed, s)
			continue
		}
		report.Updated = append(report.Updated, s)
	}

	slog.Info("quote sync finished",
		"requested", report.Requested,
		"updated", len(report.Updated),
		"failed", len(report.Failed))
	return report, nil
}

// syncOne makes two quote-service requests, each behind the rate limiter.
func (u *SyncUsecase) syncOne(ctx context.Context, symbol string) error {
	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}
	q, err := u.service.GetQuote(ctx, symbol)
	if err != nil {
		return err
	}
	if q == nil || q.Name == "" {
		return ErrNoQuoteData
	}

	if err := u.limiter.Wait(ctx); err != nil {
		return err
	}
	history, err := u.service.GetHistory(ctx, symbol)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	q.Symbol = symbol
	q.History = entity.EncodeHistory(history)
	q.UpdatedAt = u.now()
	return u.store(ctx, *q)
}

// store upserts q only while its symbol is still watched. A removal that
// finished during the fetch wins over the fetched quote.
func (u *SyncUsecase) store(ctx context.Context, q entity.Quote) error {
	u.writes.Lock()
	defer u.writes.Unlock()

	watched, err := u.symbols.Symbols(ctx)
	if err != nil {
		return fmt.Errorf("recheck watched symbols: %w", err)
	}
	if !slices.Contains(ticker.NormalizeAll(watched), q.Symbol) {
		return ErrSymbolUnwatched
	}
	return u.quotes.Upsert(ctx, q)
}
