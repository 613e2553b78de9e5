package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boardentity "stockhawk/internal/feature/board/domain/entity"
	quoteentity "stockhawk/internal/feature/quotes/domain/entity"
	prefentity "stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/platform/notify"
)

type fakeQuotes struct {
	mu      sync.Mutex
	rows    map[string]quoteentity.Quote
	listErr error
	delErr  error
}

func newFakeQuotes(symbols ...string) *fakeQuotes {
	f := &fakeQuotes{rows: map[string]quoteentity.Quote{}}
	for _, s := range symbols {
		f.rows[s] = quoteentity.Quote{
			Symbol:           s,
			Name:             s + " Inc",
			Price:            decimal.RequireFromString("10"),
			AbsoluteChange:   decimal.RequireFromString("0.5"),
			PercentageChange: decimal.RequireFromString("5"),
		}
	}
	return f
}

func (f *fakeQuotes) List(ctx context.Context) ([]quoteentity.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]quoteentity.Quote, 0, len(f.rows))
	for _, q := range f.rows {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (f *fakeQuotes) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeQuotes) Delete(ctx context.Context, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.rows, symbol)
	return nil
}

type fakePrefs struct {
	mu     sync.Mutex
	set    map[string]bool
	mode   prefentity.DisplayMode
	remErr error
}

func newFakePrefs(symbols ...string) *fakePrefs {
	p := &fakePrefs{set: map[string]bool{}, mode: prefentity.DisplayPercent}
	for _, s := range symbols {
		p.set[s] = true
	}
	return p
}

func (p *fakePrefs) Symbols(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for s := range p.set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}

func (p *fakePrefs) RemoveSymbol(ctx context.Context, symbol string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remErr != nil {
		return p.remErr
	}
	delete(p.set, symbol)
	return nil
}

func (p *fakePrefs) DisplayMode(ctx context.Context) (prefentity.DisplayMode, error) {
	return p.mode, nil
}

type countingTrigger struct{ n int }

func (c *countingTrigger) TriggerNow() { c.n++ }

type staticNet bool

func (s staticNet) Online(context.Context) bool { return bool(s) }

type recordingNotifier struct{ events []notify.Event }

func (r *recordingNotifier) Notify(e notify.Event) { r.events = append(r.events, e) }

func TestBoardUsecase_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		online  bool
		stored  []string
		watched []string
		want    boardentity.ScreenState
	}{
		{"offline and empty table", false, nil, []string{"AAPL"}, boardentity.StateNoNetwork},
		{"offline with cached data", false, []string{"AAPL"}, []string{"AAPL"}, boardentity.StateNoNetworkCached},
		{"online with no watched symbols", true, []string{"AAPL"}, nil, boardentity.StateNoStocks},
		{"online and empty everything", true, nil, nil, boardentity.StateNoStocks},
		{"online with symbols", true, nil, []string{"AAPL"}, boardentity.StateOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			trigger := &countingTrigger{}
			uc := NewBoardUsecase(newFakeQuotes(tt.stored...), newFakePrefs(tt.watched...), trigger, staticNet(tt.online), &recordingNotifier{}, new(sync.Mutex))

			got, err := uc.Refresh(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, trigger.n, "refresh always re-triggers the sync job")
		})
	}
}

func TestBoardUsecase_Rows(t *testing.T) {
	t.Parallel()

	prefs := newFakePrefs()
	uc := NewBoardUsecase(newFakeQuotes("MSFT", "AAPL"), prefs, &countingTrigger{}, staticNet(true), &recordingNotifier{}, new(sync.Mutex))

	rows, mode, err := uc.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prefentity.DisplayPercent, mode)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAPL", rows[0].Symbol)
	assert.Equal(t, "MSFT", rows[1].Symbol)
	assert.Equal(t, "+5.00%", rows[0].Change)

	prefs.mode = prefentity.DisplayAbsolute
	rows, _, err = uc.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "+$0.50", rows[0].Change)
	assert.Equal(t, "$10.00", rows[0].Price)
}

func TestBoardUsecase_Rows_Error(t *testing.T) {
	t.Parallel()

	quotes := newFakeQuotes()
	quotes.listErr = errors.New("db down")
	uc := NewBoardUsecase(quotes, newFakePrefs(), &countingTrigger{}, staticNet(true), &recordingNotifier{}, new(sync.Mutex))

	_, _, err := uc.Rows(context.Background())
	assert.ErrorContains(t, err, "db down")
}

// TestBoardUsecase_Remove は削除で監視銘柄とクオートの両方から消えることを検証します。
func TestBoardUsecase_Remove(t *testing.T) {
	t.Parallel()

	quotes := newFakeQuotes("AAPL", "MSFT")
	prefs := newFakePrefs("AAPL", "MSFT")
	n := &recordingNotifier{}
	uc := NewBoardUsecase(quotes, prefs, &countingTrigger{}, staticNet(true), n, new(sync.Mutex))

	require.NoError(t, uc.Remove(context.Background(), " aapl"))

	symbols, _ := prefs.Symbols(context.Background())
	assert.Equal(t, []string{"MSFT"}, symbols)
	rows, _, err := uc.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MSFT", rows[0].Symbol)

	require.Len(t, n.events, 1)
	assert.Equal(t, notify.ReasonRemoved, n.events[0].Reason)
	assert.Equal(t, []string{"AAPL"}, n.events[0].Symbols)
}

func TestBoardUsecase_Remove_Errors(t *testing.T) {
	t.Parallel()

	t.Run("blank symbol", func(t *testing.T) {
		t.Parallel()
		uc := NewBoardUsecase(newFakeQuotes(), newFakePrefs(), &countingTrigger{}, staticNet(true), &recordingNotifier{}, new(sync.Mutex))
		assert.ErrorIs(t, uc.Remove(context.Background(), "  "), ErrInvalidSymbol)
	})

	t.Run("delete fails", func(t *testing.T) {
		t.Parallel()
		quotes := newFakeQuotes("AAPL")
		quotes.delErr = errors.New("locked")
		n := &recordingNotifier{}
		uc := NewBoardUsecase(quotes, newFakePrefs("AAPL"), &countingTrigger{}, staticNet(true), n, new(sync.Mutex))

		err := uc.Remove(context.Background(), "AAPL")
		assert.ErrorContains(t, err, "delete quote AAPL")
		assert.Empty(t, n.events)
	})
}

// TestBoardUsecase_Remove_WaitsForQuoteWrite は同期処理の書き込み中は削除が待機することを検証します。
func TestBoardUsecase_Remove_WaitsForQuoteWrite(t *testing.T) {
	t.Parallel()

	quotes := newFakeQuotes("AAPL")
	prefs := newFakePrefs("AAPL")
	writes := new(sync.Mutex)
	uc := NewBoardUsecase(quotes, prefs, &countingTrigger{}, staticNet(true), &recordingNotifier{}, writes)

	writes.Lock()
	done := make(chan error, 1)
	go func() { done <- uc.Remove(context.Background(), "AAPL") }()

	select {
	case <-done:
		t.Fatal("Remove returned while a quote write was in progress")
	case <-time.After(50 * time.Millisecond):
	}
	symbols, _ := prefs.Symbols(context.Background())
	assert.Equal(t, []string{"AAPL"}, symbols)

	writes.Unlock()
	require.NoError(t, <-done)
	n, _ := quotes.Count(context.Background())
	assert.Zero(t, n)
}
