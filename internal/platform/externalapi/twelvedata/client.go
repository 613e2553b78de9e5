package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockhawk/internal/feature/quotes/domain/entity"
	"stockhawk/internal/feature/quotes/usecase"
	"stockhawk/internal/platform/externalapi/twelvedata/dto"
)

// errNoRecord marks a response meaning "the service knows no such symbol".
var errNoRecord = errors.New("twelvedata: no record")

// Client implements usecase.QuoteService against Twelve Data.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ usecase.QuoteService = (*Client)(nil)

// NewClient creates a Client using the given HTTP client.
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetQuote fetches the latest quote. It returns (nil, nil) when the service
// has no record of symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	var body dto.QuoteResponse
	err := c.get(ctx, "quote", url.Values{"symbol": {symbol}}, &body, &body.ErrorFields)
	if errors.Is(err, errNoRecord) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(body.Close)
	if err != nil {
		return nil, fmt.Errorf("parse close %q: %w", body.Close, err)
	}
	change, err := parseOptional(body.Change)
	if err != nil {
		return nil, fmt.Errorf("parse change %q: %w", body.Change, err)
	}
	pct, err := parseOptional(body.PercentChange)
	if err != nil {
		return nil, fmt.Errorf("parse percent_change %q: %w", body.PercentChange, err)
	}

	return &entity.Quote{
		Symbol:           body.Symbol,
		Name:             body.Name,
		Price:            price,
		AbsoluteChange:   change,
		PercentageChange: pct,
	}, nil
}

// GetHistory fetches two years of weekly closes, newest first as the
// service returns them. A symbol without history yields an empty slice.
func (c *Client) GetHistory(ctx context.Context, symbol string) ([]entity.HistoricalDataPoint, error) {
	q := url.Values{
		"symbol":     {symbol},
		"interval":   {HistoryInterval},
		"outputsize": {strconv.Itoa(HistoryOutputSize)},
	}
	var body dto.TimeSeriesResponse
	err := c.get(ctx, "time_series", q, &body, &body.ErrorFields)
	if errors.Is(err, errNoRecord) {
		return []entity.HistoricalDataPoint{}, nil
	}
	if err != nil {
		return nil, err
	}

	points := make([]entity.HistoricalDataPoint, 0, len(body.Values))
	for _, v := range body.Values {
		tm, err := parseDatetime(v.Datetime)
		if err != nil {
			return nil, err
		}
		value, err := decimal.NewFromString(v.Close)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		points = append(points, entity.HistoricalDataPoint{Date: tm, Value: value})
	}
	return points, nil
}

// get performs GET {BaseURL}/{path}?{q}&apikey=..., decodes into out and
// interprets the shared error fields.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any, ef *dto.ErrorFields) error {
	q.Set("apikey", c.cfg.APIKey)
	u := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("twelvedata %s: %w", path, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return errNoRecord
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("twelvedata %s: decode: %w", path, err)
	}
	if ef.Status == "error" {
		if isNoRecord(ef) {
			return errNoRecord
		}
		return fmt.Errorf("twelvedata: %s", ef.Message)
	}
	return nil
}

// isNoRecord recognizes the service's "symbol not found" answers, which
// come back as code 404, or 400 with a message about the symbol.
func isNoRecord(ef *dto.ErrorFields) bool {
	switch ef.Code {
	case http.StatusNotFound:
		return true
	case http.StatusBadRequest:
		return strings.Contains(strings.ToLower(ef.Message), "symbol")
	}
	return false
}

func parseOptional(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseDatetime(s string) (time.Time, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return tm, nil
	}
	tm, err = time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return tm, nil
}
