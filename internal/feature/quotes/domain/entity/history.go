package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HistoricalDataPoint is one (date, close) pair of a symbol's history.
type HistoricalDataPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// EncodeHistory serializes points as one "<unix millis>, <value>\n" line each,
// in the order given.
func EncodeHistory(points []HistoricalDataPoint) string {
	var b strings.Builder
	for _, p := range points {
		b.WriteString(strconv.FormatInt(p.Date.UnixMilli(), 10))
		b.WriteString(", ")
		b.WriteString(p.Value.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// DecodeHistory parses a blob written by EncodeHistory and returns the
// points ordered by ascending date. Blank lines are ignored.
func DecodeHistory(blob string) ([]HistoricalDataPoint, error) {
	lines := strings.Split(blob, "\n")
	points := make([]HistoricalDataPoint, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		date, value, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("history line %d: missing separator in %q", i+1, line)
		}
		ms, err := strconv.ParseInt(strings.TrimSpace(date), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("history line %d: parse date %q: %w", i+1, date, err)
		}
		v, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("history line %d: parse value %q: %w", i+1, value, err)
		}
		points = append(points, HistoricalDataPoint{Date: time.UnixMilli(ms).UTC(), Value: v})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}
