package usecase_test

import (
	"context"
	"sort"
	"sync"

	"stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/feature/watchlist/usecase"
)

// memPreferences はPreferenceRepositoryのインメモリ実装です。
type memPreferences struct {
	mu          sync.Mutex
	set         map[string]struct{}
	mode        entity.DisplayMode
	initialized bool

	addErr  error
	modeErr error
}

var _ usecase.PreferenceRepository = (*memPreferences)(nil)

func newMemPreferences(symbols ...string) *memPreferences {
	m := &memPreferences{set: map[string]struct{}{}}
	for _, s := range symbols {
		m.set[s] = struct{}{}
	}
	return m
}

func (m *memPreferences) Symbols(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.set))
	for s := range m.set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memPreferences) AddSymbol(ctx context.Context, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return m.addErr
	}
	m.set[symbol] = struct{}{}
	return nil
}

func (m *memPreferences) RemoveSymbol(ctx context.Context, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.set, symbol)
	return nil
}

func (m *memPreferences) DisplayMode(ctx context.Context) (entity.DisplayMode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.modeErr != nil {
		return "", m.modeErr
	}
	if m.mode == "" {
		return entity.DefaultDisplayMode, nil
	}
	return m.mode, nil
}

func (m *memPreferences) SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	return nil
}

func (m *memPreferences) Initialized(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized, nil
}

func (m *memPreferences) MarkInitialized(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = true
	return nil
}
