package valuation

import (
	"math"

	"github.com/asubedar/profit-ladder/internal/models"
)

// Defaults applied when a ladder parameter is absent.
const (
	DefaultLevels       = 5
	DefaultStepFraction = 0.01 // 1% of the average price
)

// LadderRow is one hypothetical price level around a position's average
// price and the profit/loss the position would carry there.
type LadderRow struct {
	PriceLevel    float64 `json:"priceLevel"`
	ProfitLoss    float64 `json:"profitLoss"`
	PercentChange float64 `json:"percentChange"`
	Highlight     bool    `json:"highlight"`
}

// Ladder generates the profit ladder for a position: one row per step in
// [-levels, +levels], skipping negative price levels. The row whose price is
// nearest the current market price is highlighted; ties keep the first-seen
// row. A zero currentPrice falls back to the cached last price, then to the
// average price itself.
func Ladder(position models.Position, currentPrice float64) []LadderRow {
	levels := position.Levels
	if levels <= 0 {
		levels = DefaultLevels
	}
	step := position.PriceStep
	if step <= 0 {
		step = position.AvgPrice * DefaultStepFraction
	}
	if currentPrice == 0 {
		currentPrice = position.LastPrice
	}
	if currentPrice == 0 {
		currentPrice = position.AvgPrice
	}

	rows := make([]LadderRow, 0, 2*levels+1)
	closest := -1
	smallestDiff := math.Inf(1)

	for i := -levels; i <= levels; i++ {
		priceLevel := position.AvgPrice + float64(i)*step
		if priceLevel < 0 {
			continue
		}

		row := LadderRow{
			PriceLevel: priceLevel,
			ProfitLoss: (priceLevel - position.AvgPrice) * float64(position.NumShares),
		}
		if position.AvgPrice != 0 {
			row.PercentChange = (priceLevel - position.AvgPrice) / position.AvgPrice * 100
		}

		if diff := math.Abs(priceLevel - currentPrice); diff < smallestDiff {
			smallestDiff = diff
			closest = len(rows)
		}
		rows = append(rows, row)
	}

	if closest >= 0 {
		rows[closest].Highlight = true
	}
	return rows
}
