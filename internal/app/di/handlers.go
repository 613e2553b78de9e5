package di

import (
	"stockhawk/internal/app/router"
	boardhandler "stockhawk/internal/feature/board/transport/handler"
	quotehandler "stockhawk/internal/feature/quotes/transport/handler"
	watchhandler "stockhawk/internal/feature/watchlist/transport/handler"
	platformhandler "stockhawk/internal/platform/http/handler"
)

// Handlers builds the HTTP handlers over the container's usecases.
func (c *Container) Handlers() router.Handlers {
	return router.Handlers{
		Health:    platformhandler.NewHealthHandler(c.Probes()),
		Board:     boardhandler.NewBoardHandler(c.Board),
		Quotes:    quotehandler.NewQuoteHandler(c.History, c.Scheduler, c.Hub),
		Watchlist: watchhandler.NewWatchlistHandler(c.Preference, c.Add),
	}
}
