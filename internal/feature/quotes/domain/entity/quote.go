// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest fetched price data for one watched symbol.
// There is at most one Quote per symbol.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	AbsoluteChange   decimal.Decimal `json:"absolute_change"`
	PercentageChange decimal.Decimal `json:"percentage_change"` // 1.5 means +1.5%
	UpdatedAt        time.Time       `json:"updated_at"`
	History          string          `json:"history"` // see EncodeHistory
}

// IsUp reports whether the absolute change is zero or positive.
func (q Quote) IsUp() bool {
	return !q.AbsoluteChange.IsNegative()
}
