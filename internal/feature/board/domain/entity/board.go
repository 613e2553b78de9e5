// Package entity defines the list screen's view models.
package entity

// Direction is the sign of a quote's change.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Row is one rendered line of the list screen.
type Row struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`  // "$1,234.56"
	Change    string    `json:"change"` // "+$1.23" or "+1.23%" per display mode
	Direction Direction `json:"direction"`
}

// ScreenState is the outcome of a refresh. Exactly one applies.
type ScreenState string

const (
	StateOK ScreenState = "ok"
	// StateNoNetwork: offline and nothing stored yet.
	StateNoNetwork ScreenState = "no_network"
	// StateNoNetworkCached: offline, stored quotes are shown as-is.
	StateNoNetworkCached ScreenState = "no_network_cached"
	// StateNoStocks: online but the watched set is empty.
	StateNoStocks ScreenState = "no_stocks"
)

// Persistent reports whether the state is shown as a banner that stays
// until the next refresh, as opposed to a one-off notice.
func (s ScreenState) Persistent() bool {
	return s == StateNoNetwork || s == StateNoStocks
}

// Message is the user-facing text for s, empty for StateOK.
func (s ScreenState) Message() string {
	switch s {
	case StateNoNetwork:
		return "No network connection and no stock data yet."
	case StateNoNetworkCached:
		return "No network connection, showing cached data."
	case StateNoStocks:
		return "No stocks in your watchlist. Add one to get started."
	}
	return ""
}
