// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"errors"
	"strings"
)

// DisplayMode selects how price changes are shown on the list screen.
type DisplayMode string

const (
	DisplayAbsolute DisplayMode = "absolute"
	DisplayPercent  DisplayMode = "percent"
)

// DefaultDisplayMode is used until the user picks a mode.
const DefaultDisplayMode = DisplayPercent

// ErrInvalidDisplayMode is returned by ParseDisplayMode for unknown values.
var ErrInvalidDisplayMode = errors.New("invalid display mode")

// ParseDisplayMode accepts "absolute" or "percent", case-insensitively.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(s))) {
	case DisplayAbsolute:
		return DisplayAbsolute, nil
	case DisplayPercent:
		return DisplayPercent, nil
	}
	return "", ErrInvalidDisplayMode
}

// Toggle returns the other mode.
func (m DisplayMode) Toggle() DisplayMode {
	if m == DisplayAbsolute {
		return DisplayPercent
	}
	return DisplayAbsolute
}

func (m DisplayMode) String() string { return string(m) }
