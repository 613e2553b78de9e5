// Package di provides dependency injection factories for creating application components.
package di

import (
	"stockhawk/internal/platform/config"
	"stockhawk/internal/platform/externalapi/twelvedata"
	infrahttp "stockhawk/internal/platform/http"
)

// NewQuoteClient creates a fully configured Twelve Data client with HTTP client.
func NewQuoteClient(cfg config.QuotesConfig) *twelvedata.Client {
	tdCfg := twelvedata.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}
	return twelvedata.NewClient(tdCfg, infrahttp.NewHTTPClient(tdCfg.Timeout))
}
