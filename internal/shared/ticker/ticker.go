// Package ticker holds the canonical form of a stock ticker symbol.
package ticker

import "strings"

// Normalize trims surrounding whitespace and upper-cases s.
// The quote service treats symbols case-insensitively, so "aapl " and
// "AAPL" must land on the same watched symbol and quote row.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeAll normalizes every element, dropping empties and duplicates
// while keeping first-seen order.
func NormalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
