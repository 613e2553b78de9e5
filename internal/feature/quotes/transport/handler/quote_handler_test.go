package handler

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/feature/quotes/usecase"
	"stockhawk/internal/platform/notify"
)

// mockHistoryUsecase はHistoryUsecaseインターフェースのモック実装です。
type mockHistoryUsecase struct {
	GetHistoryFunc func(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error)
}

func (m *mockHistoryUsecase) GetHistory(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error) {
	return m.GetHistoryFunc(ctx, symbol)
}

// mockSyncRunner はSyncRunnerインターフェースのモック実装です。
type mockSyncRunner struct {
	SyncNowFunc func(ctx context.Context) (usecase.SyncReport, error)
}

func (m *mockSyncRunner) SyncNow(ctx context.Context) (usecase.SyncReport, error) {
	return m.SyncNowFunc(ctx)
}

func setupRouter(h *QuoteHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/quotes/events", h.Events)
	r.GET("/quotes/:symbol/history", h.History)
	r.POST("/sync", h.Sync)
	return r
}

func TestQuoteHandler_History(t *testing.T) {
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		fn           func(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success: points in ascending order",
			fn: func(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error) {
				return &entity.Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.RequireFromString("10.5"), UpdatedAt: updated},
					[]entity.HistoricalDataPoint{
						{Date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("9")},
						{Date: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("10")},
					}, nil
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"symbol":"AAPL","name":"Apple Inc","price":"10.5","updated_at":"2025-03-01T12:00:00Z","points":[
				{"date":"2025-01-06","millis":1736121600000,"value":"9"},
				{"date":"2025-01-13","millis":1736726400000,"value":"10"}]}`,
		},
		{
			name: "failure: unknown symbol",
			fn: func(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error) {
				return nil, nil, usecase.ErrQuoteNotFound
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"quote not found"}`,
		},
		{
			name: "failure: corrupt history",
			fn: func(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error) {
				return nil, nil, errors.New("decode history of AAPL: bad line")
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"decode history of AAPL: bad line"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewQuoteHandler(&mockHistoryUsecase{GetHistoryFunc: tt.fn}, nil, notify.NewHub())
			w := httptest.NewRecorder()
			setupRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes/AAPL/history", nil))

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestQuoteHandler_Sync(t *testing.T) {
	runner := &mockSyncRunner{SyncNowFunc: func(ctx context.Context) (usecase.SyncReport, error) {
		return usecase.SyncReport{Requested: 2, Updated: []string{"AAPL"}, Failed: []string{"ZZZZ"}}, nil
	}}
	h := NewQuoteHandler(nil, runner, notify.NewHub())
	w := httptest.NewRecorder()
	setupRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"requested":2,"updated":["AAPL"],"failed":["ZZZZ"]}`, w.Body.String())

	runner.SyncNowFunc = func(ctx context.Context) (usecase.SyncReport, error) {
		return usecase.SyncReport{}, errors.New("load watched symbols: db down")
	}
	w = httptest.NewRecorder()
	setupRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestQuoteHandler_Events は変更通知がSSEとして配信されることを検証します。
func TestQuoteHandler_Events(t *testing.T) {
	hub := notify.NewHub()
	server := httptest.NewServer(setupRouter(NewQuoteHandler(nil, nil, hub)))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/quotes/events", nil)
	require.NoError(t, err)
	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	hub.Notify(notify.Event{Reason: notify.ReasonSynced, Symbols: []string{"AAPL"}})

	lines := make(chan string, 64)
	go func() {
		sc := bufio.NewScanner(res.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	var sawEvent bool
	timeout := time.After(2 * time.Second)
	for !sawEvent {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			if strings.HasPrefix(line, "data:") && strings.Contains(line, `"reason":"synced"`) {
				assert.Contains(t, line, `"symbols":["AAPL"]`)
				sawEvent = true
			}
		case <-timeout:
			t.Fatal("no quotes event received")
		}
	}

	cancel()
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}
