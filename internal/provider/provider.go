// Package provider fetches current quote data for a set of tickers from an
// external market-data API. Two providers are supported: Alpaca (one batched
// snapshot request) and Finnhub (per-symbol quote plus daily candles). Both
// normalize into the same PriceInfo shape.
//
// Fetching is deliberately lossy rather than fail-fast: a transport failure
// degrades to an empty result and the caller falls back to each position's
// last cached quote.
package provider

import (
	"context"
	"net/http"
	"time"

	"github.com/asubedar/profit-ladder/internal/logger"
	"github.com/asubedar/profit-ladder/internal/settings"
)

const (
	alpacaBaseURL  = "https://data.alpaca.markets"
	finnhubBaseURL = "https://finnhub.io/api/v1"
)

// PriceInfo is the normalized quote for one ticker. A zero TradedAt means
// the trade timestamp is unavailable.
type PriceInfo struct {
	Price     float64
	Open      float64
	PrevClose float64
	TradedAt  time.Time
}

// Client fetches prices from whichever provider the credential resolver
// selected for the current cycle.
type Client struct {
	httpClient *http.Client

	// Overridable for tests.
	alpacaURL  string
	finnhubURL string
}

// NewClient creates a price-fetching client sharing the given HTTP client.
func NewClient(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		alpacaURL:  alpacaBaseURL,
		finnhubURL: finnhubBaseURL,
	}
}

// FetchPrices retrieves current quote data for the given tickers using the
// selected provider. An empty ticker set or an unresolved provider returns
// an empty map without any network call. Transport-level failures are
// logged and degrade to an empty map; FetchPrices never returns an error.
func (c *Client) FetchPrices(ctx context.Context, tickers []string, sel settings.Selection) map[string]PriceInfo {
	if len(tickers) == 0 || sel.Kind == settings.ProviderNone {
		return map[string]PriceInfo{}
	}

	switch sel.Kind {
	case settings.ProviderAlpaca:
		prices, err := c.fetchAlpaca(ctx, tickers, sel.Key, sel.Secret)
		if err != nil {
			logger.Get().Warnw("alpaca snapshot fetch failed", "tickers", len(tickers), "error", err)
			return map[string]PriceInfo{}
		}
		return prices
	case settings.ProviderFinnhub:
		return c.fetchFinnhub(ctx, tickers, sel.Key)
	default:
		return map[string]PriceInfo{}
	}
}
