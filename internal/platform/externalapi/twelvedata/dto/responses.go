// Package dto defines the Twelve Data response payloads.
package dto

// ErrorFields are present on every response; Status is "error" on failure.
type ErrorFields struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// QuoteResponse is the body of GET /quote. Numbers arrive as strings.
type QuoteResponse struct {
	ErrorFields
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Currency      string `json:"currency"`
	Datetime      string `json:"datetime"`
	Timestamp     int64  `json:"timestamp"`
	Close         string `json:"close"`
	PreviousClose string `json:"previous_close"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
}

// TimeSeriesResponse is the body of GET /time_series.
type TimeSeriesResponse struct {
	ErrorFields
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}
