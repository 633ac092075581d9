// Package provider fetches exchange rate quotes from an external market
// data source. It is a collaborator of the rate store: fetched quotes are
// written as observations before the resolver ever sees them, and the
// resolver itself never performs network I/O.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (compatible; homeledger/1.0)"
)

// Quoter fetches the current exchange rate for a currency pair.
type Quoter interface {
	// FetchRate returns the rate that converts from into to.
	FetchRate(ctx context.Context, from, to string) (float64, error)
}

// YahooForex fetches forex quotes from the Yahoo Finance chart API, which
// quotes currency pairs as tickers like "AEDUSD=X".
type YahooForex struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooForex creates a new Yahoo Finance forex client.
func NewYahooForex(httpClient *http.Client) *YahooForex {
	return &YahooForex{httpClient: httpClient, baseURL: yahooBaseURL}
}

// FetchRate fetches the current rate converting from into to.
func (y *YahooForex) FetchRate(ctx context.Context, from, to string) (float64, error) {
	ticker := strings.ToUpper(from) + strings.ToUpper(to) + "=X"
	url := y.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("forex http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("forex request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return 0, fmt.Errorf("decoding forex response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil {
		return 0, fmt.Errorf("forex chart error for %s: %s: %s",
			ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no forex results for %s", ticker)
	}

	rate := chartResp.Chart.Result[0].Meta.RegularMarketPrice
	if rate <= 0 {
		return 0, fmt.Errorf("invalid forex rate for %s: %f", ticker, rate)
	}

	return rate, nil
}

// chartResponse mirrors the fields we need from the Yahoo chart API.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
