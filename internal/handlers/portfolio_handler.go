package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/portfolio"
)

// PortfolioHandler serves the valued portfolio view and its display state.
type PortfolioHandler struct {
	manager *portfolio.Manager
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(manager *portfolio.Manager) *PortfolioHandler {
	return &PortfolioHandler{manager: manager}
}

// SetSortRequest represents the request payload for a column header click.
// Direction is optional: when absent, clicking the current sort column
// toggles between ascending and descending.
type SetSortRequest struct {
	Column    string `json:"column" binding:"required"`
	Direction string `json:"direction" binding:"omitempty,sort_direction"`
}

// SetColumnsRequest represents the request payload for reordering columns.
type SetColumnsRequest struct {
	Columns []string `json:"columns" binding:"required,min=1"`
}

// HideTickerRequest represents the request payload for hiding a ticker.
type HideTickerRequest struct {
	Hide bool `json:"hide"`
}

// GetPortfolio returns the valued, sorted, visible position set with totals
// and the effective column layout. Prices are fetched inline when a provider
// is configured; otherwise cached quotes are used.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	view := h.manager.Load(c.Request.Context())
	c.JSON(http.StatusOK, view)
}

// RefreshPortfolio forces a reload and price fetch, returning the fresh view.
func (h *PortfolioHandler) RefreshPortfolio(c *gin.Context) {
	view := h.manager.Load(c.Request.Context())
	c.JSON(http.StatusOK, view)
}

// SetSort applies a column header click: the same column toggles direction,
// a new column sorts ascending. Returns the persisted sort state.
func (h *PortfolioHandler) SetSort(c *gin.Context) {
	var req SetSortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	column, direction, err := h.manager.SetSort(req.Column, req.Direction)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sortColumn": column, "sortDirection": direction})
}

// SetColumns persists a new visible column order.
func (h *PortfolioHandler) SetColumns(c *gin.Context) {
	var req SetColumnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	columns, err := h.manager.SetVisibleColumns(req.Columns)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// ListColumns returns the full column catalog in default order.
func (h *PortfolioHandler) ListColumns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"columns": portfolio.AvailableColumns})
}

// ListTickers returns the distinct tickers with their effective visibility.
func (h *PortfolioHandler) ListTickers(c *gin.Context) {
	tickers, err := h.manager.ListTickers()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickers": tickers})
}

// HideTicker sets the hide flag on every position of a ticker.
func (h *PortfolioHandler) HideTicker(c *gin.Context) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Ticker symbol is required"))
		return
	}

	var req HideTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.manager.SetTickerHidden(symbol, req.Hide); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickerSymbol": strings.ToUpper(symbol), "hidden": req.Hide})
}
