// Package valuation computes the derived financial fields of a portfolio:
// per-position cost basis, profit, daily change and gap, aggregate totals,
// and the profit-ladder projection. Everything here is a pure function of
// its inputs; fetched quote data is consumed, never mutated or persisted.
package valuation

import (
	"time"

	"github.com/asubedar/profit-ladder/internal/models"
	"github.com/asubedar/profit-ladder/internal/provider"
)

// Totals aggregates the additive fields across a position set. Percentage
// totals are recomputed from the summed base quantities, not summed across
// rows: a 10% gain on a large position and a 10% loss on a small one must
// not cancel out.
type Totals struct {
	CostBasis      float64 `json:"costBasis"`
	TotalValue     float64 `json:"totalValue"`
	Profit         float64 `json:"profit"`
	ProfitPct      float64 `json:"profitPct"`
	ChangeToday    float64 `json:"changeToday"`
	ChangePctToday float64 `json:"changePctToday"`
	GapPct         float64 `json:"gapPct"`
}

// Valuate computes every derived field for the given positions from the
// fetched price data and returns the enriched copies plus totals. For each
// position the current price falls back from the fetched quote to the
// last-known cached price to zero; the same chain applies to the open and
// previous-close prices. Valuate is total: it produces a result for every
// input and never fails.
func Valuate(positions []models.Position, prices map[string]provider.PriceInfo, now time.Time) ([]models.Position, Totals) {
	valued := make([]models.Position, len(positions))

	var totals Totals
	var sumPrevClose, sumGap float64

	for i, position := range positions {
		info := prices[position.TickerSymbol]

		currentPrice := fallback(info.Price, position.LastPrice)
		openPrice := fallback(info.Open, position.OpenPrice)
		prevClose := fallback(info.PrevClose, position.PrevClosePrice)

		tradedAt := info.TradedAt
		if tradedAt.IsZero() && position.LastTradeAt != nil {
			tradedAt = *position.LastTradeAt
		}

		position.CostBasis = position.AvgPrice * float64(position.NumShares)
		position.TotalValue = currentPrice * float64(position.NumShares)
		position.Profit = position.TotalValue - position.CostBasis
		position.ProfitPct = 0
		if position.CostBasis != 0 {
			position.ProfitPct = position.Profit / position.CostBasis * 100
		}
		position.ChangeToday = currentPrice - prevClose
		position.ChangePctToday = 0
		position.GapPct = 0
		if prevClose != 0 {
			position.ChangePctToday = position.ChangeToday / prevClose * 100
			position.GapPct = (currentPrice - openPrice) / prevClose * 100
		}
		position.TimeSinceLastTrade = RelativeTime(tradedAt, now)

		totals.CostBasis += position.CostBasis
		totals.TotalValue += position.TotalValue
		totals.Profit += position.Profit
		totals.ChangeToday += position.ChangeToday
		sumPrevClose += prevClose
		sumGap += currentPrice - openPrice

		valued[i] = position
	}

	if totals.CostBasis != 0 {
		totals.ProfitPct = totals.Profit / totals.CostBasis * 100
	}
	if sumPrevClose != 0 {
		totals.ChangePctToday = totals.ChangeToday / sumPrevClose * 100
		totals.GapPct = sumGap / sumPrevClose * 100
	}

	return valued, totals
}

// fallback returns the fetched value unless it is zero, in which case the
// cached value applies.
func fallback(fetched, cached float64) float64 {
	if fetched != 0 {
		return fetched
	}
	return cached
}
