// Package portfolio owns the in-memory working set of positions: loading
// and valuing them, sort and column-visibility state, per-ticker hiding,
// import/export, and the auto-refresh timer. All state is mirrored to the
// local store so it survives restarts; the working set itself is rebuilt
// from storage on every load rather than patched incrementally.
package portfolio

import (
	"context"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/logger"
	"github.com/asubedar/profit-ladder/internal/models"
	"github.com/asubedar/profit-ladder/internal/provider"
	"github.com/asubedar/profit-ladder/internal/settings"
	"github.com/asubedar/profit-ladder/internal/store"
	"github.com/asubedar/profit-ladder/internal/valuation"
)

// View is one fully valued, sorted rendering of the visible position set,
// ready for a display layer to consume.
type View struct {
	Positions     []models.Position `json:"positions"`
	Totals        valuation.Totals  `json:"totals"`
	Columns       []string          `json:"columns"`
	SortColumn    string            `json:"sortColumn"`
	SortDirection string            `json:"sortDirection"`
}

// Manager coordinates the position store, settings, price fetching, and
// valuation into one working set.
type Manager struct {
	positions  *store.PositionStore
	settings   *settings.Service
	prices     *provider.Client
	httpClient *http.Client
}

// NewManager creates a new portfolio Manager.
func NewManager(positions *store.PositionStore, settingsService *settings.Service, prices *provider.Client, httpClient *http.Client) *Manager {
	return &Manager{
		positions:  positions,
		settings:   settingsService,
		prices:     prices,
		httpClient: httpClient,
	}
}

// Load rebuilds the working set: read all positions, drop hidden ones,
// fetch current prices through whichever provider has credentials, value
// the set, and apply the persisted sort. Storage and network failures here
// degrade to cached or empty data so the view stays usable; they are
// logged, never raised.
func (m *Manager) Load(ctx context.Context) *View {
	all, err := m.positions.GetAll()
	if err != nil {
		logger.Get().Errorw("failed to load positions", "error", err)
		all = nil
	}

	visible := make([]models.Position, 0, len(all))
	for _, position := range all {
		if !position.Hide {
			visible = append(visible, position)
		}
	}

	prices := m.prices.FetchPrices(ctx, uniqueTickers(visible), m.settings.ResolveProvider())
	m.cacheQuotes(visible, prices)

	valued, totals := valuation.Valuate(visible, prices, time.Now())

	sortColumn, sortDirection, err := m.settings.SortState()
	if err != nil {
		logger.Get().Warnw("failed to load sort state", "error", err)
		sortColumn, sortDirection = "", settings.DirectionAsc
	}
	sortPositions(valued, sortColumn, sortDirection)

	return &View{
		Positions:     valued,
		Totals:        totals,
		Columns:       m.effectiveColumns(),
		SortColumn:    sortColumn,
		SortDirection: sortDirection,
	}
}

// cacheQuotes writes fetched quote data back onto each position so the next
// load can fall back to it when no provider is reachable. Writes are issued
// sequentially; a failure costs only the stale cache and is logged.
func (m *Manager) cacheQuotes(positions []models.Position, prices map[string]provider.PriceInfo) {
	for i := range positions {
		info, ok := prices[positions[i].TickerSymbol]
		if !ok {
			continue
		}
		if info.Price != 0 {
			positions[i].LastPrice = info.Price
		}
		if info.Open != 0 {
			positions[i].OpenPrice = info.Open
		}
		if info.PrevClose != 0 {
			positions[i].PrevClosePrice = info.PrevClose
		}
		if !info.TradedAt.IsZero() {
			tradedAt := info.TradedAt
			positions[i].LastTradeAt = &tradedAt
		}
		if err := m.positions.Put(&positions[i]); err != nil {
			logger.Get().Warnw("failed to cache quote", "ticker", positions[i].TickerSymbol, "error", err)
		}
	}
}

// effectiveColumns returns the persisted column order, deduplicated, or the
// catalog default when the user has never customized columns.
func (m *Manager) effectiveColumns() []string {
	columns, found, err := m.settings.VisibleColumns()
	if err != nil {
		logger.Get().Warnw("failed to load visible columns", "error", err)
		return DefaultColumnKeys()
	}
	if !found || len(columns) == 0 {
		return DefaultColumnKeys()
	}
	return NormalizeColumns(columns)
}

// SetSort applies a click on a column header: the same column toggles the
// direction, a new column resets to ascending. A non-empty requested
// direction skips the toggle and is applied as-is. The resulting state is
// persisted before it is returned.
func (m *Manager) SetSort(column, requested string) (string, string, error) {
	if !knownColumn(column) {
		return "", "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown sort column: "+column)
	}

	current, direction, err := m.settings.SortState()
	if err != nil {
		return "", "", err
	}

	switch {
	case requested == settings.DirectionAsc || requested == settings.DirectionDesc:
		direction = requested
	case current == column && direction == settings.DirectionAsc:
		direction = settings.DirectionDesc
	default:
		direction = settings.DirectionAsc
	}

	if err := m.settings.SetSortState(column, direction); err != nil {
		return "", "", err
	}
	return column, direction, nil
}

// SetVisibleColumns persists a new column order. Duplicates collapse to
// their first occurrence and unknown keys are dropped; at least one known
// column must remain.
func (m *Manager) SetVisibleColumns(columns []string) ([]string, error) {
	normalized := NormalizeColumns(columns)
	if len(normalized) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one known column is required")
	}
	if err := m.settings.SetVisibleColumns(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// SetTickerHidden sets the hide flag on every stored position sharing the
// ticker. Writes go out sequentially so a failure cannot interleave with
// another ticker's update; the first failure is surfaced.
func (m *Manager) SetTickerHidden(tickerSymbol string, hide bool) error {
	tickerSymbol = strings.ToUpper(strings.TrimSpace(tickerSymbol))
	positions, err := m.positions.GetAllByTicker(tickerSymbol)
	if err != nil {
		return err
	}
	for i := range positions {
		positions[i].Hide = hide
		if err := m.positions.Put(&positions[i]); err != nil {
			return err
		}
	}
	return nil
}

// SavePosition validates and upserts a position keyed by ticker: an
// existing position for the same ticker is updated in place, never
// duplicated. The ladder step defaults to 1% of the average price and the
// range to five levels.
func (m *Manager) SavePosition(tickerSymbol string, avgPrice float64, numShares int, priceStep float64, levels int) (*models.Position, error) {
	tickerSymbol = strings.ToUpper(strings.TrimSpace(tickerSymbol))
	if tickerSymbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker symbol is required")
	}
	if priceStep <= 0 {
		priceStep = avgPrice * valuation.DefaultStepFraction
	}
	if levels <= 0 {
		levels = valuation.DefaultLevels
	}

	existing, err := m.positions.GetAllByTicker(tickerSymbol)
	if err != nil {
		return nil, err
	}

	var position *models.Position
	if len(existing) > 0 {
		position = &existing[0]
		position.AvgPrice = avgPrice
		position.NumShares = numShares
		position.PriceStep = priceStep
		position.Levels = levels
	} else {
		position = &models.Position{
			TickerSymbol: tickerSymbol,
			AvgPrice:     avgPrice,
			NumShares:    numShares,
			PriceStep:    priceStep,
			Levels:       levels,
		}
	}

	if err := m.positions.Put(position); err != nil {
		return nil, err
	}
	return position, nil
}

// GetPosition returns one stored position by id.
func (m *Manager) GetPosition(id string) (*models.Position, error) {
	return m.positions.Get(id)
}

// ListPositions returns every stored position, hidden ones included.
func (m *Manager) ListPositions() ([]models.Position, error) {
	return m.positions.GetAll()
}

// DeletePosition removes one stored position by id.
func (m *Manager) DeletePosition(id string) error {
	return m.positions.Delete(id)
}

// ListTickers returns the distinct tickers across all stored positions,
// each with its effective hidden state (hidden only when every position
// for the ticker is hidden).
func (m *Manager) ListTickers() ([]TickerState, error) {
	tickers, err := m.positions.ListTickers()
	if err != nil {
		return nil, err
	}

	states := make([]TickerState, 0, len(tickers))
	for _, ticker := range tickers {
		positions, err := m.positions.GetAllByTicker(ticker)
		if err != nil {
			return nil, err
		}
		hidden := len(positions) > 0
		for _, position := range positions {
			if !position.Hide {
				hidden = false
				break
			}
		}
		states = append(states, TickerState{TickerSymbol: ticker, Hidden: hidden})
	}
	return states, nil
}

// TickerState pairs a ticker with its effective visibility.
type TickerState struct {
	TickerSymbol string `json:"tickerSymbol"`
	Hidden       bool   `json:"hidden"`
}

// ResetSettings rewrites the view settings to their defaults and unhides
// every position.
func (m *Manager) ResetSettings() error {
	if err := m.settings.ResetViewState(DefaultColumnKeys()); err != nil {
		return err
	}

	positions, err := m.positions.GetAll()
	if err != nil {
		return err
	}
	for i := range positions {
		if !positions[i].Hide {
			continue
		}
		positions[i].Hide = false
		if err := m.positions.Put(&positions[i]); err != nil {
			return err
		}
	}
	return nil
}

// uniqueTickers collects the distinct ticker symbols of a position set,
// preserving first-seen order.
func uniqueTickers(positions []models.Position) []string {
	seen := make(map[string]bool, len(positions))
	tickers := make([]string, 0, len(positions))
	for _, position := range positions {
		if seen[position.TickerSymbol] {
			continue
		}
		seen[position.TickerSymbol] = true
		tickers = append(tickers, position.TickerSymbol)
	}
	return tickers
}
