// Package usecase implements the quote sync job and the history view.
package usecase

import "errors"

var (
	// ErrQuoteNotFound is returned when no stored quote exists for a symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrNoQuoteData is returned when the quote service has no usable record
	// for a symbol (nil result or empty name).
	ErrNoQuoteData = errors.New("quote service returned no data")

	// ErrSymbolUnwatched is returned when a symbol left the watched set
	// while its quote was being fetched.
	ErrSymbolUnwatched = errors.New("symbol no longer watched")
)
