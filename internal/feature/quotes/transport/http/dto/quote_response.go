// Package dto はquotesフィーチャーのレスポンス型を定義します。
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryPoint は履歴の1点です。
type HistoryPoint struct {
	Date   string          `json:"date"` // 2006-01-02
	Millis int64           `json:"millis"`
	Value  decimal.Decimal `json:"value"`
}

// HistoryResponse は詳細画面のレスポンスです。
type HistoryResponse struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updated_at"`
	Points    []HistoryPoint  `json:"points"`
}
