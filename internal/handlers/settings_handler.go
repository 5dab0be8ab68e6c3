package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/portfolio"
	"github.com/asubedar/profit-ladder/internal/settings"
)

// SettingsHandler handles provider credentials, the auto-refresh interval,
// and view-state reset. Credential values are write-only: responses report
// which provider is active, never the stored keys.
type SettingsHandler struct {
	settings  *settings.Service
	manager   *portfolio.Manager
	refresher *portfolio.Refresher
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *settings.Service, manager *portfolio.Manager, refresher *portfolio.Refresher) *SettingsHandler {
	return &SettingsHandler{settings: settingsService, manager: manager, refresher: refresher}
}

// UpdateSettingsRequest represents the request payload for updating
// settings. Every field is optional; absent fields are left untouched.
type UpdateSettingsRequest struct {
	AlpacaKeyID     *string `json:"alpacaKeyId"`
	AlpacaSecretKey *string `json:"alpacaSecretKey"`
	FinnhubAPIKey   *string `json:"finnhubApiKey"`
	RefreshInterval *int    `json:"refreshInterval" binding:"omitempty,gte=0,lte=86400"`
}

// GetSettings returns the current view state, the refresh interval, and
// which price provider the stored credentials resolve to.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	interval, err := h.settings.RefreshInterval()
	if err != nil {
		respondWithError(c, err)
		return
	}

	sortColumn, sortDirection, err := h.settings.SortState()
	if err != nil {
		respondWithError(c, err)
		return
	}

	columns, found, err := h.settings.VisibleColumns()
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !found || len(columns) == 0 {
		columns = portfolio.DefaultColumnKeys()
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":        h.settings.ResolveProvider().Kind.String(),
		"refreshInterval": interval,
		"sortColumn":      sortColumn,
		"sortDirection":   sortDirection,
		"visibleColumns":  columns,
	})
}

// UpdateSettings stores any credentials and refresh interval present in the
// payload. A changed interval re-arms the auto-refresh timer immediately; an
// interval of zero disables it.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	credentials := map[string]*string{
		settings.KeyAlpacaKeyID:   req.AlpacaKeyID,
		settings.KeyAlpacaSecret:  req.AlpacaSecretKey,
		settings.KeyFinnhubAPIKey: req.FinnhubAPIKey,
	}
	for key, value := range credentials {
		if value == nil {
			continue
		}
		if err := h.settings.SetCredential(key, *value); err != nil {
			respondWithError(c, err)
			return
		}
	}

	if req.RefreshInterval != nil {
		if err := h.settings.SetRefreshInterval(*req.RefreshInterval); err != nil {
			respondWithError(c, err)
			return
		}
		h.refresher.Apply(*req.RefreshInterval)
	}

	h.GetSettings(c)
}

// ResetSettings restores the default column layout and sort state and
// unhides every position. Credentials and the refresh interval survive.
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	if err := h.manager.ResetSettings(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings reset"})
}
