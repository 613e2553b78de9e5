package usecase

import "errors"

// ErrInvalidSymbol is returned for an empty symbol.
var ErrInvalidSymbol = errors.New("invalid symbol")
