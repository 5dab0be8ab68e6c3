package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/asubedar/profit-ladder/internal/logger"
)

// finnhubQuote is the /quote response: current price and daily open.
type finnhubQuote struct {
	Current float64 `json:"c"`
	Open    float64 `json:"o"`
}

// finnhubCandle is the /stock/candle response; only the close series is used.
type finnhubCandle struct {
	Closes []float64 `json:"c"`
}

// fetchFinnhub has no batch endpoint, so it issues a quote request and a
// two-sample daily-candle request per ticker, concurrently across tickers.
// A failed quote leaves that ticker with an all-zero PriceInfo and does not
// abort the others; a failed candle only costs the previous close.
func (c *Client) fetchFinnhub(ctx context.Context, tickers []string, apiKey string) map[string]PriceInfo {
	var mu sync.Mutex
	prices := make(map[string]PriceInfo, len(tickers))

	var wg sync.WaitGroup
	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			info := c.fetchFinnhubTicker(ctx, ticker, apiKey)
			mu.Lock()
			prices[ticker] = info
			mu.Unlock()
		}(ticker)
	}
	wg.Wait()

	return prices
}

// fetchFinnhubTicker fetches one ticker's quote and previous close.
func (c *Client) fetchFinnhubTicker(ctx context.Context, ticker, apiKey string) PriceInfo {
	var quote finnhubQuote
	quoteURL := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.finnhubURL, ticker, apiKey)
	if err := c.getJSON(ctx, quoteURL, &quote); err != nil {
		logger.Get().Warnw("finnhub quote fetch failed", "ticker", ticker, "error", err)
		return PriceInfo{}
	}

	prevClose := 0.0
	var candle finnhubCandle
	candleURL := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=D&count=2&token=%s", c.finnhubURL, ticker, apiKey)
	if err := c.getJSON(ctx, candleURL, &candle); err != nil {
		logger.Get().Warnw("finnhub candle fetch failed", "ticker", ticker, "error", err)
	} else if len(candle.Closes) > 1 {
		prevClose = candle.Closes[len(candle.Closes)-2]
	}

	return PriceInfo{
		Price:     quote.Current,
		Open:      quote.Open,
		PrevClose: prevClose,
		TradedAt:  time.Now(),
	}
}

// getJSON performs a GET and decodes a JSON response body into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
