// Package handler はboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockhawk/internal/feature/board/domain/entity"
	"stockhawk/internal/feature/board/transport/http/dto"
	"stockhawk/internal/feature/board/usecase"
	prefentity "stockhawk/internal/feature/watchlist/domain/entity"
)

// BoardUsecase はリスト画面のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BoardUsecase interface {
	Rows(ctx context.Context) ([]entity.Row, prefentity.DisplayMode, error)
	Refresh(ctx context.Context) (entity.ScreenState, error)
	Remove(ctx context.Context, symbol string) error
}

// BoardHandler はリスト画面のHTTPリクエストを処理します。
type BoardHandler struct {
	uc BoardUsecase
}

// NewBoardHandler は指定されたusecaseでBoardHandlerの新しいインスタンスを生成します。
func NewBoardHandler(uc BoardUsecase) *BoardHandler {
	return &BoardHandler{uc: uc}
}

// List は保存済みクオートを現在の表示モードで返します。
//
// エンドポイント例:
// GET /quotes
func (h *BoardHandler) List(c *gin.Context) {
	rows, mode, err := h.uc.Rows(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.BoardResponse{DisplayMode: mode.String(), Rows: rows})
}

// Refresh は同期を要求し、画面状態を返します。
// ネットワーク不通も正常応答(200)として state で表現します。
func (h *BoardHandler) Refresh(c *gin.Context) {
	state, err := h.uc.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.RefreshResponse{
		State:      string(state),
		Message:    state.Message(),
		Persistent: state.Persistent(),
	})
}

// Remove は銘柄を監視対象とクオートテーブルの両方から削除します。
//
// エンドポイント例:
// DELETE /symbols/:symbol
func (h *BoardHandler) Remove(c *gin.Context) {
	err := h.uc.Remove(c.Request.Context(), c.Param("symbol"))
	if errors.Is(err, usecase.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
