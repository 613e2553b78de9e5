package usecase

import (
	"context"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/platform/notify"
)

// QuoteRepository is the persisted quote table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteRepository interface {
	// Upsert inserts q or replaces the row with the same symbol.
	Upsert(ctx context.Context, q entity.Quote) error
	// List returns every stored quote ordered by symbol.
	List(ctx context.Context) ([]entity.Quote, error)
	// FindBySymbol returns ErrQuoteNotFound when there is no row.
	FindBySymbol(ctx context.Context, symbol string) (*entity.Quote, error)
	// Delete removes the row for symbol; deleting a missing row is not an error.
	Delete(ctx context.Context, symbol string) error
	Count(ctx context.Context) (int64, error)
}

// QuoteService is the remote finance-quote service.
type QuoteService interface {
	// GetQuote returns (nil, nil) when the service has no record of symbol.
	GetQuote(ctx context.Context, symbol string) (*entity.Quote, error)
	GetHistory(ctx context.Context, symbol string) ([]entity.HistoricalDataPoint, error)
}

// SymbolSource yields the watched symbol set.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]string, error)
}

// Notifier tells observers that the quote table changed.
type Notifier interface {
	Notify(e notify.Event)
}
