// Package http provides the outbound HTTP client used for the quote service.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client tuned for calls to the quote service.
//
// http.DefaultClient has no timeout, so callers always go through this.
// The dial and TLS timeouts are shorter than the defaults so that a dead
// network is reported quickly to the refresh and add-symbol flows.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
