package usecase

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	boardentity "stockhawk/internal/feature/board/domain/entity"
	quoteentity "stockhawk/internal/feature/quotes/domain/entity"
	prefentity "stockhawk/internal/feature/watchlist/domain/entity"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders d as US dollars with grouping, e.g. "$1,234.56".
func FormatPrice(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + grouped(d.Neg())
	}
	return "$" + grouped(d)
}

// FormatAbsoluteChange renders a signed dollar change, e.g. "+$1.23".
// Zero is rendered with a plus sign.
func FormatAbsoluteChange(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + grouped(d.Neg())
	}
	return "+$" + grouped(d)
}

// FormatPercentChange renders a signed percentage where 1.23 means 1.23%.
func FormatPercentChange(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + grouped(d.Neg()) + "%"
	}
	return "+" + grouped(d) + "%"
}

func grouped(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// RenderRow builds the list row for q in the given display mode.
func RenderRow(q quoteentity.Quote, mode prefentity.DisplayMode) boardentity.Row {
	row := boardentity.Row{
		Symbol:    q.Symbol,
		Name:      q.Name,
		Price:     FormatPrice(q.Price),
		Direction: boardentity.Down,
	}
	if q.IsUp() {
		row.Direction = boardentity.Up
	}
	if mode == prefentity.DisplayAbsolute {
		row.Change = FormatAbsoluteChange(q.AbsoluteChange)
	} else {
		row.Change = FormatPercentChange(q.PercentageChange)
	}
	return row
}
