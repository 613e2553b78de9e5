package usecase

import (
	"context"
	"fmt"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/shared/ticker"
)

// HistoryUsecase backs the read-only detail view of one symbol.
type HistoryUsecase struct {
	quotes QuoteRepository
}

// NewHistoryUsecase creates a HistoryUsecase.
func NewHistoryUsecase(quotes QuoteRepository) *HistoryUsecase {
	return &HistoryUsecase{quotes: quotes}
}

// GetHistory returns the stored quote for symbol and its history points in
// ascending date order.
func (u *HistoryUsecase) GetHistory(ctx context.Context, symbol string) (*entity.Quote, []entity.HistoricalDataPoint, error) {
	q, err := u.quotes.FindBySymbol(ctx, ticker.Normalize(symbol))
	if err != nil {
		return nil, nil, err
	}
	points, err := entity.DecodeHistory(q.History)
	if err != nil {
		return nil, nil, fmt.Errorf("decode history of %s: %w", q.Symbol, err)
	}
	return q, points, nil
}
