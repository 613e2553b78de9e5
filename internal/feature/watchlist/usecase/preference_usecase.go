// Package usecase implements the business logic for the watched symbol set
// and display preferences.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/shared/ticker"
)

// PreferenceUsecase provides read and write access to user preferences.
type PreferenceUsecase struct {
	repo PreferenceRepository
}

// NewPreferenceUsecase creates a new PreferenceUsecase with the given repository.
func NewPreferenceUsecase(r PreferenceRepository) *PreferenceUsecase {
	return &PreferenceUsecase{repo: r}
}

// ListSymbols returns the watched set.
func (u *PreferenceUsecase) ListSymbols(ctx context.Context) ([]string, error) {
	return u.repo.Symbols(ctx)
}

// DisplayMode returns the active display mode.
func (u *PreferenceUsecase) DisplayMode(ctx context.Context) (entity.DisplayMode, error) {
	return u.repo.DisplayMode(ctx)
}

// SetDisplayMode stores mode. Stored quotes are not touched.
func (u *PreferenceUsecase) SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error {
	if _, err := entity.ParseDisplayMode(string(mode)); err != nil {
		return err
	}
	return u.repo.SetDisplayMode(ctx, mode)
}

// ToggleDisplayMode flips between absolute and percent and returns the new mode.
func (u *PreferenceUsecase) ToggleDisplayMode(ctx context.Context) (entity.DisplayMode, error) {
	cur, err := u.repo.DisplayMode(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := u.repo.SetDisplayMode(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// SeedDefaults adds defaults to the watched set on first start only.
// Once seeded, an emptied watched set stays empty.
func (u *PreferenceUsecase) SeedDefaults(ctx context.Context, defaults []string) (bool, error) {
	done, err := u.repo.Initialized(ctx)
	if err != nil {
		return false, fmt.Errorf("read initialized flag: %w", err)
	}
	if done {
		return false, nil
	}
	for _, s := range ticker.NormalizeAll(defaults) {
		if err := u.repo.AddSymbol(ctx, s); err != nil {
			return false, fmt.Errorf("seed %s: %w", s, err)
		}
	}
	if err := u.repo.MarkInitialized(ctx); err != nil {
		return false, err
	}
	slog.Info("seeded default symbols", "symbols", defaults)
	return true, nil
}
