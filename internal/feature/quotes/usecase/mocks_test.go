package usecase

import (
	"context"
	"slices"
	"sync"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/platform/notify"
)

// mockQuoteRepository is a QuoteRepository with per-method funcs.
type mockQuoteRepository struct {
	UpsertFunc       func(ctx context.Context, q entity.Quote) error
	ListFunc         func(ctx context.Context) ([]entity.Quote, error)
	FindBySymbolFunc func(ctx context.Context, symbol string) (*entity.Quote, error)
	DeleteFunc       func(ctx context.Context, symbol string) error
	CountFunc        func(ctx context.Context) (int64, error)

	mu       sync.Mutex
	upserted []entity.Quote
}

func (m *mockQuoteRepository) Upsert(ctx context.Context, q entity.Quote) error {
	m.mu.Lock()
	m.upserted = append(m.upserted, q)
	m.mu.Unlock()
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, q)
	}
	return nil
}

func (m *mockQuoteRepository) List(ctx context.Context) ([]entity.Quote, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockQuoteRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Quote, error) {
	if m.FindBySymbolFunc != nil {
		return m.FindBySymbolFunc(ctx, symbol)
	}
	return nil, ErrQuoteNotFound
}

func (m *mockQuoteRepository) Delete(ctx context.Context, symbol string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, symbol)
	}
	return nil
}

func (m *mockQuoteRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// mockQuoteService is a QuoteService with per-method funcs.
type mockQuoteService struct {
	GetQuoteFunc   func(ctx context.Context, symbol string) (*entity.Quote, error)
	GetHistoryFunc func(ctx context.Context, symbol string) ([]entity.HistoricalDataPoint, error)

	mu    sync.Mutex
	calls int
}

func (m *mockQuoteService) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.GetQuoteFunc(ctx, symbol)
}

func (m *mockQuoteService) GetHistory(ctx context.Context, symbol string) ([]entity.HistoricalDataPoint, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, symbol)
	}
	return nil, nil
}

type mockSymbolSource struct {
	mu      sync.Mutex
	symbols []string
	err     error
}

func (m *mockSymbolSource) Symbols(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.symbols...), m.err
}

func (m *mockSymbolSource) remove(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols = slices.DeleteFunc(m.symbols, func(s string) bool { return s == symbol })
}

// mockLimiter counts calls and never waits.
type mockLimiter struct {
	calls int
	err   error
}

func (m *mockLimiter) Wait(ctx context.Context) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return ctx.Err()
}

type mockNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (m *mockNotifier) Notify(e notify.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}
