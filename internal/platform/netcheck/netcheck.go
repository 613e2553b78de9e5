// Package netcheck answers "is the network up" for the refresh and add flows.
package netcheck

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Checker probes a single URL. Any HTTP response, whatever its status,
// counts as connectivity; only transport failures count as offline.
type Checker struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// NewChecker returns a Checker probing url with client.
func NewChecker(client *http.Client, url string) *Checker {
	return &Checker{client: client, url: url, timeout: 3 * time.Second}
}

// Online reports whether url answered within the probe timeout.
func (c *Checker) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		slog.Warn("connectivity probe: bad url", "url", c.url, "error", err)
		return false
	}
	res, err := c.client.Do(req)
	if err != nil {
		slog.Debug("connectivity probe failed", "url", c.url, "error", err)
		return false
	}
	_ = res.Body.Close()
	return true
}
