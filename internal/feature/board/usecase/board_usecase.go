// Package usecase はリスト画面のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	boardentity "stockhawk/internal/feature/board/domain/entity"
	quoteentity "stockhawk/internal/feature/quotes/domain/entity"
	prefentity "stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/platform/notify"
	"stockhawk/internal/shared/ticker"
)

// QuoteStore is the part of the quote table the list screen needs.
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteStore interface {
	List(ctx context.Context) ([]quoteentity.Quote, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, symbol string) error
}

// Preferences is the part of the preference store the list screen needs.
type Preferences interface {
	Symbols(ctx context.Context) ([]string, error)
	RemoveSymbol(ctx context.Context, symbol string) error
	DisplayMode(ctx context.Context) (prefentity.DisplayMode, error)
}

// SyncTrigger requests an immediate sync.
type SyncTrigger interface {
	TriggerNow()
}

// Connectivity reports whether the network is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// Notifier tells observers that the quote table changed.
type Notifier interface {
	Notify(e notify.Event)
}

// BoardUsecase drives the list screen.
type BoardUsecase struct {
	quotes   QuoteStore
	prefs    Preferences
	trigger  SyncTrigger
	net      Connectivity
	notifier Notifier

	// writes is shared with the sync job so a pass cannot store a quote
	// for a symbol removed while it was being fetched.
	writes sync.Locker
}

// NewBoardUsecase creates a BoardUsecase.
func NewBoardUsecase(quotes QuoteStore, prefs Preferences, trigger SyncTrigger, net Connectivity,
	notifier Notifier, writes sync.Locker) *BoardUsecase {
	return &BoardUsecase{quotes: quotes, prefs: prefs, trigger: trigger, net: net, notifier: notifier, writes: writes}
}

// Rows renders every stored quote, sorted by symbol, in the current display mode.
func (u *BoardUsecase) Rows(ctx context.Context) ([]boardentity.Row, prefentity.DisplayMode, error) {
	mode, err := u.prefs.DisplayMode(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("read display mode: %w", err)
	}
	quotes, err := u.quotes.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list quotes: %w", err)
	}
	rows := make([]boardentity.Row, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, RenderRow(q, mode))
	}
	return rows, mode, nil
}

// Refresh re-triggers the sync job and decides which screen state to show.
func (u *BoardUsecase) Refresh(ctx context.Context) (boardentity.ScreenState, error) {
	u.trigger.TriggerNow()

	if !u.net.Online(ctx) {
		n, err := u.quotes.Count(ctx)
		if err != nil {
			return "", fmt.Errorf("count quotes: %w", err)
		}
		if n == 0 {
			return boardentity.StateNoNetwork, nil
		}
		return boardentity.StateNoNetworkCached, nil
	}

	symbols, err := u.prefs.Symbols(ctx)
	if err != nil {
		return "", fmt.Errorf("load watched symbols: %w", err)
	}
	if len(symbols) == 0 {
		return boardentity.StateNoStocks, nil
	}
	return boardentity.StateOK, nil
}

// Remove unwatches symbol and deletes its stored quote. There is no undo.
func (u *BoardUsecase) Remove(ctx context.Context, symbol string) error {
	symbol = ticker.Normalize(symbol)
	if symbol == "" {
		return ErrInvalidSymbol
	}
	if err := u.remove(ctx, symbol); err != nil {
		return err
	}
	u.notifier.Notify(notify.Event{Reason: notify.ReasonRemoved, Symbols: []string{symbol}})
	slog.Info("symbol removed", "symbol", symbol)
	return nil
}

func (u *BoardUsecase) remove(ctx context.Context, symbol string) error {
	u.writes.Lock()
	defer u.writes.Unlock()

	if err := u.prefs.RemoveSymbol(ctx, symbol); err != nil {
		return fmt.Errorf("remove %s from watchlist: %w", symbol, err)
	}
	if err := u.quotes.Delete(ctx, symbol); err != nil {
		return fmt.Errorf("delete quote %s: %w", symbol, err)
	}
	return nil
}
