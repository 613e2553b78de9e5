package usecase

import "errors"

var (
	// ErrInvalidSymbol is returned when the submitted symbol is empty after normalization.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrSymbolNotFound means the quote service has no usable record for the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrQuoteService wraps an I/O or parse failure from the quote service.
	ErrQuoteService = errors.New("quote service error")
	// ErrNetworkUnavailable means there is no connectivity to validate a symbol.
	ErrNetworkUnavailable = errors.New("network unavailable")
)
