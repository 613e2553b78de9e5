package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockhawk/internal/feature/watchlist/domain/entity"
	"stockhawk/internal/feature/watchlist/transport/http/dto"
	"stockhawk/internal/feature/watchlist/usecase"
)

// PreferenceUsecase は監視銘柄と表示モードに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type PreferenceUsecase interface {
	ListSymbols(ctx context.Context) ([]string, error)
	DisplayMode(ctx context.Context) (entity.DisplayMode, error)
	SetDisplayMode(ctx context.Context, mode entity.DisplayMode) error
	ToggleDisplayMode(ctx context.Context) (entity.DisplayMode, error)
}

// AddUsecase は銘柄追加フローのインターフェースです。
type AddUsecase interface {
	Add(ctx context.Context, raw string) (usecase.AddResult, error)
}

// WatchlistHandler は監視銘柄と表示設定のHTTPリクエストを処理します。
type WatchlistHandler struct {
	prefs PreferenceUsecase
	add   AddUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(prefs PreferenceUsecase, add AddUsecase) *WatchlistHandler {
	return &WatchlistHandler{prefs: prefs, add: add}
}

// ListSymbols は監視銘柄の一覧を返します。
func (h *WatchlistHandler) ListSymbols(c *gin.Context) {
	symbols, err := h.prefs.ListSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if symbols == nil {
		symbols = []string{}
	}
	c.JSON(http.StatusOK, dto.SymbolsResponse{Symbols: symbols})
}

// AddSymbol は銘柄を検証してから監視銘柄に追加します。
// 見つからない銘柄は404、クオートサービスの障害は502、オフラインは503を返します。
func (h *WatchlistHandler) AddSymbol(c *gin.Context) {
	var req dto.AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	res, err := h.add.Add(c.Request.Context(), req.Symbol)
	if err != nil {
		status := addErrorStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("add symbol failed", "symbol", req.Symbol, "error", err)
		}
		c.JSON(status, gin.H{"error": addErrorMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, dto.AddSymbolResponse{
		Symbol:  res.Symbol,
		Name:    res.Name,
		Message: "stock added",
	})
}

func addErrorStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrQuoteService):
		return http.StatusBadGateway
	case errors.Is(err, usecase.ErrNetworkUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func addErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrSymbolNotFound):
		return "stock symbol not found"
	case errors.Is(err, usecase.ErrQuoteService):
		return "error while checking the stock symbol, try again later"
	case errors.Is(err, usecase.ErrNetworkUnavailable):
		return "no network connection, can't add stock"
	}
	return err.Error()
}

// GetDisplayMode は現在の表示モードを返します。
func (h *WatchlistHandler) GetDisplayMode(c *gin.Context) {
	mode, err := h.prefs.DisplayMode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DisplayModeResponse{Mode: mode.String()})
}

// SetDisplayMode は表示モードを設定します。
func (h *WatchlistHandler) SetDisplayMode(c *gin.Context) {
	var req dto.DisplayModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}
	mode, err := entity.ParseDisplayMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.prefs.SetDisplayMode(c.Request.Context(), mode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DisplayModeResponse{Mode: mode.String()})
}

// ToggleDisplayMode は表示モードを切り替えます。
func (h *WatchlistHandler) ToggleDisplayMode(c *gin.Context) {
	mode, err := h.prefs.ToggleDisplayMode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DisplayModeResponse{Mode: mode.String()})
}
