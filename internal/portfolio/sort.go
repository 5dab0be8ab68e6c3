package portfolio

import (
	"sort"
	"strings"

	"github.com/asubedar/profit-ladder/internal/models"
	"github.com/asubedar/profit-ladder/internal/settings"
)

// sortPositions orders positions by the given column, stably. Descending
// order is the exact reverse of ascending order, duplicates included. An
// empty or unknown column leaves the slice untouched.
func sortPositions(positions []models.Position, column, direction string) {
	if column == "" || !knownColumn(column) {
		return
	}

	sort.SliceStable(positions, func(i, j int) bool {
		return columnLess(&positions[i], &positions[j], column)
	})

	if direction == settings.DirectionDesc {
		for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
			positions[i], positions[j] = positions[j], positions[i]
		}
	}
}

// columnLess compares two positions on one column. String columns compare
// case-insensitively; missing values sort as the empty string.
func columnLess(a, b *models.Position, column string) bool {
	switch column {
	case "tickerSymbol":
		return strings.ToLower(a.TickerSymbol) < strings.ToLower(b.TickerSymbol)
	case "lastTime":
		return strings.ToLower(a.TimeSinceLastTrade) < strings.ToLower(b.TimeSinceLastTrade)
	default:
		return numericValue(a, column) < numericValue(b, column)
	}
}

func numericValue(p *models.Position, column string) float64 {
	switch column {
	case "avgPrice":
		return p.AvgPrice
	case "numShares":
		return float64(p.NumShares)
	case "lastPrice":
		return p.LastPrice
	case "costBasis":
		return p.CostBasis
	case "totalValue":
		return p.TotalValue
	case "profit":
		return p.Profit
	case "profitPct":
		return p.ProfitPct
	case "changeToday":
		return p.ChangeToday
	case "changePctToday":
		return p.ChangePctToday
	case "gapPct":
		return p.GapPct
	default:
		return 0
	}
}
