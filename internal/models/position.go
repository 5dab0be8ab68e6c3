package models

import "time"

// Position represents one tracked stock holding: the user-entered fields,
// the ladder calculator parameters, and the most recent quote data cached
// from a price refresh.
//
// A ticker may appear in more than one saved position, so ticker_symbol
// carries a non-unique index rather than serving as the primary key.
type Position struct {
	Base
	TickerSymbol string  `gorm:"not null;index:idx_positions_ticker_symbol" json:"tickerSymbol"`
	AvgPrice     float64 `gorm:"not null" json:"avgPrice"`
	NumShares    int     `gorm:"not null" json:"numShares"`
	PriceStep    float64 `json:"priceStep"`
	Levels       int     `json:"levels"`
	Hide         bool    `gorm:"not null;default:false" json:"hide"`

	// Last-known quote data, written back after each successful price fetch
	// so later loads can fall back to it when no provider is reachable.
	LastPrice      float64    `json:"lastPrice,omitempty"`
	OpenPrice      float64    `json:"openPrice,omitempty"`
	PrevClosePrice float64    `json:"prevClosePrice,omitempty"`
	LastTradeAt    *time.Time `json:"lastTradeAt,omitempty"`

	// Derived fields, recomputed on every valuation pass and never persisted.
	CostBasis          float64 `gorm:"-" json:"costBasis"`
	TotalValue         float64 `gorm:"-" json:"totalValue"`
	Profit             float64 `gorm:"-" json:"profit"`
	ProfitPct          float64 `gorm:"-" json:"profitPct"`
	ChangeToday        float64 `gorm:"-" json:"changeToday"`
	ChangePctToday     float64 `gorm:"-" json:"changePctToday"`
	GapPct             float64 `gorm:"-" json:"gapPct"`
	TimeSinceLastTrade string  `gorm:"-" json:"timeSinceLastTrade"`
}
