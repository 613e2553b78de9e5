// Package adapters provides the SQL implementation of the quote table.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/feature/quotes/usecase"
)

// QuoteModel is the row layout of the quotes table.
type QuoteModel struct {
	ID               uint            `gorm:"primaryKey"`
	Symbol           string          `gorm:"size:32;not null;uniqueIndex"`
	Name             string          `gorm:"size:255;not null;default:''"`
	Price            decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	AbsoluteChange   decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	PercentageChange decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	History          string          `gorm:"type:text;not null;default:''"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName pins the table name.
func (QuoteModel) TableName() string {
	return "quotes"
}

type quoteGorm struct {
	db *gorm.DB
}

var _ usecase.QuoteRepository = (*quoteGorm)(nil)

// NewQuoteRepository returns the gorm-backed quote table.
func NewQuoteRepository(db *gorm.DB) *quoteGorm {
	return &quoteGorm{db: db}
}

func toModel(q entity.Quote) QuoteModel {
	return QuoteModel{
		Symbol:           q.Symbol,
		Name:             q.Name,
		Price:            q.Price,
		AbsoluteChange:   q.AbsoluteChange,
		PercentageChange: q.PercentageChange,
		History:          q.History,
		UpdatedAt:        q.UpdatedAt,
	}
}

func toEntity(m QuoteModel) entity.Quote {
	return entity.Quote{
		Symbol:           m.Symbol,
		Name:             m.Name,
		Price:            m.Price,
		AbsoluteChange:   m.AbsoluteChange,
		PercentageChange: m.PercentageChange,
		History:          m.History,
		UpdatedAt:        m.UpdatedAt,
	}
}

// Upsert inserts the quote or overwrites every column of the existing row
// for the same symbol (last sync wins).
func (r *quoteGorm) Upsert(ctx context.Context, q entity.Quote) error {
	m := toModel(q)
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "price", "absolute_change", "percentage_change", "history", "updated_at",
		}),
	}).Create(&m).Error
}

// List returns all quotes sorted by symbol.
func (r *quoteGorm) List(ctx context.Context) ([]entity.Quote, error) {
	var rows []QuoteModel
	if err := r.db.WithContext(ctx).Order("symbol ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Quote, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindBySymbol returns usecase.ErrQuoteNotFound when no row matches.
func (r *quoteGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Quote, error) {
	var m QuoteModel
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}
	q := toEntity(m)
	return &q, nil
}

// Delete removes the row for symbol if present.
func (r *quoteGorm) Delete(ctx context.Context, symbol string) error {
	return r.db.WithContext(ctx).Where("symbol = ?", symbol).Delete(&QuoteModel{}).Error
}

// Count returns the number of stored quotes.
func (r *quoteGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&QuoteModel{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
