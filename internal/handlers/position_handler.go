package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/models"
	"github.com/asubedar/profit-ladder/internal/portfolio"
	"github.com/asubedar/profit-ladder/internal/valuation"
)

// PositionHandler handles position CRUD, the profit ladder, and
// import/export.
type PositionHandler struct {
	manager *portfolio.Manager
}

// NewPositionHandler creates a new PositionHandler.
func NewPositionHandler(manager *portfolio.Manager) *PositionHandler {
	return &PositionHandler{manager: manager}
}

// SavePositionRequest represents the request payload for saving a position.
// PriceStep and Levels are optional; zero values fall back to 1% of the
// average price and five levels.
type SavePositionRequest struct {
	TickerSymbol string  `json:"tickerSymbol" binding:"required,ticker"`
	AvgPrice     float64 `json:"avgPrice" binding:"gte=0"`
	NumShares    int     `json:"numShares"`
	PriceStep    float64 `json:"priceStep" binding:"gte=0"`
	Levels       int     `json:"levels" binding:"gte=0,lte=100"`
}

// LadderRequest represents the request payload for an ad-hoc ladder
// calculation, untethered to a stored position.
type LadderRequest struct {
	TickerSymbol string  `json:"tickerSymbol" binding:"required,ticker"`
	AvgPrice     float64 `json:"avgPrice" binding:"required,gt=0"`
	NumShares    int     `json:"numShares" binding:"required"`
	PriceStep    float64 `json:"priceStep" binding:"gte=0"`
	Levels       int     `json:"levels" binding:"gte=0,lte=100"`
	CurrentPrice float64 `json:"currentPrice" binding:"gte=0"`
}

// ImportRequest represents the request payload for importing positions from
// a URL serving a JSON array.
type ImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ListPositions returns every stored position, hidden ones included.
func (h *PositionHandler) ListPositions(c *gin.Context) {
	positions, err := h.manager.ListPositions()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

// GetPosition returns one stored position by id.
func (h *PositionHandler) GetPosition(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.manager.GetPosition(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": position})
}

// SavePosition upserts a position keyed by ticker symbol: an existing
// position for the same ticker is updated in place, never duplicated.
func (h *PositionHandler) SavePosition(c *gin.Context) {
	var req SavePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	position, err := h.manager.SavePosition(req.TickerSymbol, req.AvgPrice, req.NumShares, req.PriceStep, req.Levels)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"position": position})
}

// DeletePosition removes one stored position by id.
func (h *PositionHandler) DeletePosition(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.manager.DeletePosition(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Position deleted"})
}

// GetLadder computes the profit ladder for a stored position around its
// cached price.
func (h *PositionHandler) GetLadder(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	position, err := h.manager.GetPosition(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows := valuation.Ladder(*position, position.LastPrice)
	c.JSON(http.StatusOK, gin.H{
		"tickerSymbol": position.TickerSymbol,
		"ladder":       rows,
	})
}

// CalculateLadder computes a ladder for an ad-hoc position, without storing
// anything.
func (h *PositionHandler) CalculateLadder(c *gin.Context) {
	var req LadderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	position := models.Position{
		TickerSymbol: req.TickerSymbol,
		AvgPrice:     req.AvgPrice,
		NumShares:    req.NumShares,
		PriceStep:    req.PriceStep,
		Levels:       req.Levels,
	}
	rows := valuation.Ladder(position, req.CurrentPrice)
	c.JSON(http.StatusOK, gin.H{
		"tickerSymbol": position.TickerSymbol,
		"ladder":       rows,
	})
}

// ExportPositions streams every stored position as a pretty-printed JSON
// attachment.
func (h *PositionHandler) ExportPositions(c *gin.Context) {
	data, err := h.manager.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="positions.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportPositions fetches a JSON array of positions from a URL and upserts
// them in one transaction; a malformed payload writes nothing.
func (h *PositionHandler) ImportPositions(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	count, err := h.manager.Import(c.Request.Context(), req.URL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": count})
}
