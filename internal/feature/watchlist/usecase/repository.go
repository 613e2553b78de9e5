package usecase

import (
	"context"

	"stockhawk/internal/feature/watchlist/domain/entity"
)

// PreferenceRepository stores the watched symbol set and the display mode.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PreferenceRepository interface {
	// Symbols returns the watched set in ascending order.
	Symbols(ctx context.Context) ([]string, error)
	// AddSymbol is idempotent.
	AddSymbol(ctx context.Context, symbol string) error
	// RemoveSymbol is a no-op for symbols not in the set.
	RemoveSymbol(ctx context.Context, symbol string) error
	// DisplayMode returns entity.DefaultDisplayMode when nothing was stored.
	DisplayMode(ctx context.Context) (entity.DisplayMode, error)
	SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error
	// Initialized reports whether default symbols were already seeded.
	Initialized(ctx context.Context) (bool, error)
	MarkInitialized(ctx context.Context) error
}
