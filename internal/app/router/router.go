// Package router builds the gin engine and its route table.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	boardhandler "stockhawk/internal/feature/board/transport/handler"
	quotehandler "stockhawk/internal/feature/quotes/transport/handler"
	watchhandler "stockhawk/internal/feature/watchlist/transport/handler"
	platformhandler "stockhawk/internal/platform/http/handler"
	"stockhawk/internal/platform/http/middleware"
	jwtmw "stockhawk/internal/platform/jwt"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Board     *boardhandler.BoardHandler
	Quotes    *quotehandler.QuoteHandler
	Watchlist *watchhandler.WatchlistHandler
}

// NewRouter mounts every route. When jwtSecret is non-empty all routes
// except /healthz require a bearer token.
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(slog.Default(), "/healthz"), gin.Recovery())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	api := r.Group("/")
	if jwtSecret != "" {
		// → リクエストヘッダーに JWT が必要になる
		api.Use(jwtmw.AuthRequired(jwtSecret))
	}
	{
		// リスト画面
		api.GET("/quotes", h.Board.List)
		api.POST("/refresh", h.Board.Refresh)
		api.DELETE("/symbols/:symbol", h.Board.Remove)

		// 詳細画面・同期・変更通知
		api.GET("/quotes/events", h.Quotes.Events)
		api.GET("/quotes/:symbol/history", h.Quotes.History)
		api.POST("/sync", h.Quotes.Sync)

		// 監視銘柄・表示設定
		api.GET("/symbols", h.Watchlist.ListSymbols)
		api.POST("/symbols", h.Watchlist.AddSymbol)
		api.GET("/preferences/display-mode", h.Watchlist.GetDisplayMode)
		api.PUT("/preferences/display-mode", h.Watchlist.SetDisplayMode)
		api.POST("/preferences/display-mode/toggle", h.Watchlist.ToggleDisplayMode)
	}

	return r
}
