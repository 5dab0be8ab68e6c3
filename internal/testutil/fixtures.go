package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/asubedar/profit-ladder/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestPosition creates a position with a unique ticker and sensible
// defaults: 10 shares at 100.00 with a 1.00 ladder step over 5 levels.
func CreateTestPosition(t *testing.T, db *gorm.DB) *models.Position {
	t.Helper()
	ticker := fmt.Sprintf("TST%d", nextID())
	return CreateTestPositionWithTicker(t, db, ticker)
}

// CreateTestPositionWithTicker creates a position for the given ticker.
func CreateTestPositionWithTicker(t *testing.T, db *gorm.DB, ticker string) *models.Position {
	t.Helper()

	position := &models.Position{
		TickerSymbol: ticker,
		AvgPrice:     100,
		NumShares:    10,
		PriceStep:    1,
		Levels:       5,
	}
	if err := db.Create(position).Error; err != nil {
		t.Fatalf("failed to create test position: %v", err)
	}
	return position
}
