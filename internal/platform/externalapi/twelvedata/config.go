// Package twelvedata is the client for the Twelve Data quote service.
package twelvedata

import "time"

const (
	// HistoryInterval is the bar size of the stored history.
	HistoryInterval = "1week"
	// HistoryOutputSize covers two years of weekly bars.
	HistoryOutputSize = 104
)

// Config holds configuration for the Twelve Data client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // e.g. "https://api.twelvedata.com"
	Timeout time.Duration // HTTP request timeout
}
