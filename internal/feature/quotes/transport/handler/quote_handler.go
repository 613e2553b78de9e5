// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/feature/quotes/transport/http/dto"
	"stockhawk/internal/feature/quotes/usecase"
	"stockhawk/internal/platform/notify"
)

// HistoryUsecase は詳細画面のユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	GetHistory(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error)
}

// SyncRunner は同期を1回実行します。
type SyncRunner interface {
	SyncNow(ctx context.Context) (usecase.SyncReport, error)
}

// EventSource は変更通知の購読元です。
type EventSource interface {
	Subscribe() (<-chan notify.Event, func())
}

// QuoteHandler はクオートの詳細・同期・変更通知を扱います。
type QuoteHandler struct {
	history HistoryUsecase
	sync    SyncRunner
	events  EventSource
}

// NewQuoteHandler は新しい QuoteHandler を作成します。
func NewQuoteHandler(history HistoryUsecase, sync SyncRunner, events EventSource) *QuoteHandler {
	return &QuoteHandler{history: history, sync: sync, events: events}
}

// History は銘柄の履歴を日付昇順で返します。
//
// エンドポイント例:
// GET /quotes/:symbol/history
func (h *QuoteHandler) History(c *gin.Context) {
	q, points, err := h.history.GetHistory(c.Request.Context(), c.Param("symbol"))
	if errors.Is(err, usecase.ErrQuoteNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]dto.HistoryPoint, 0, len(points))
	for _, p := range points {
		out = append(out, dto.HistoryPoint{
			Date:   p.Date.UTC().Format("2006-01-02"),
			Millis: p.Date.UnixMilli(),
			Value:  p.Value,
		})
	}
	c.JSON(http.StatusOK, dto.HistoryResponse{
		Symbol:    q.Symbol,
		Name:      q.Name,
		Price:     q.Price,
		UpdatedAt: q.UpdatedAt,
		Points:    out,
	})
}

// Sync は同期を即時実行し、結果を返します。
func (h *QuoteHandler) Sync(c *gin.Context) {
	report, err := h.sync.SyncNow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Events はクオートテーブルの変更をServer-Sent Eventsで配信します。
// クライアントは "quotes" イベントを受けたら一覧を再取得します。
func (h *QuoteHandler) Events(c *gin.Context) {
	ch, unsubscribe := h.events.Subscribe()
	defer unsubscribe()

	slog.Debug("event stream opened", "remote", c.ClientIP())
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"ok": true})
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("quotes", e)
			return true
		}
	})
}
