package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// alpacaSnapshot is one per-symbol entry in the snapshots response. Every
// section is optional; a symbol with no trades today has no latestTrade.
type alpacaSnapshot struct {
	LatestTrade *struct {
		Price float64   `json:"p"`
		Time  time.Time `json:"t"`
	} `json:"latestTrade"`
	DailyBar *struct {
		Open float64 `json:"o"`
	} `json:"dailyBar"`
	PrevDailyBar *struct {
		Close float64 `json:"c"`
	} `json:"prevDailyBar"`
}

// fetchAlpaca issues one batched snapshot request for all tickers. Missing
// per-symbol fields default to zero values, and a missing trade time stays
// the zero time so valuation renders it as unavailable.
func (c *Client) fetchAlpaca(ctx context.Context, tickers []string, apiKey, apiSecret string) (map[string]PriceInfo, error) {
	url := c.alpacaURL + "/v2/stocks/snapshots?symbols=" + strings.Join(tickers, ",")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("APCA-API-KEY-ID", apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var snapshots map[string]alpacaSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshots); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	prices := make(map[string]PriceInfo, len(snapshots))
	for symbol, snapshot := range snapshots {
		var info PriceInfo
		if snapshot.LatestTrade != nil {
			info.Price = snapshot.LatestTrade.Price
			info.TradedAt = snapshot.LatestTrade.Time
		}
		if snapshot.DailyBar != nil {
			info.Open = snapshot.DailyBar.Open
		}
		if snapshot.PrevDailyBar != nil {
			info.PrevClose = snapshot.PrevDailyBar.Close
		}
		prices[symbol] = info
	}
	return prices, nil
}
