package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/asubedar/profit-ladder/internal/portfolio"
	"github.com/asubedar/profit-ladder/internal/provider"
	"github.com/asubedar/profit-ladder/internal/settings"
	"github.com/asubedar/profit-ladder/internal/store"
	"github.com/asubedar/profit-ladder/internal/testutil"
	"github.com/asubedar/profit-ladder/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// setupRouter wires the full handler stack over a fresh in-memory database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	positions := store.NewPositionStore(db)
	settingsService := settings.NewService(store.NewSettingStore(db))
	httpClient := &http.Client{}
	manager := portfolio.NewManager(positions, settingsService, provider.NewClient(httpClient), httpClient)
	refresher := portfolio.NewRefresher(manager)
	t.Cleanup(refresher.Stop)

	portfolioHandler := NewPortfolioHandler(manager)
	positionHandler := NewPositionHandler(manager)
	settingsHandler := NewSettingsHandler(settingsService, manager, refresher)

	r := gin.New()
	r.GET("/portfolio", portfolioHandler.GetPortfolio)
	r.PUT("/portfolio/sort", portfolioHandler.SetSort)
	r.PUT("/portfolio/columns", portfolioHandler.SetColumns)
	r.PUT("/tickers/:symbol/hide", portfolioHandler.HideTicker)
	r.GET("/positions", positionHandler.ListPositions)
	r.POST("/positions", positionHandler.SavePosition)
	r.DELETE("/positions/:id", positionHandler.DeletePosition)
	r.GET("/positions/:id/ladder", positionHandler.GetLadder)
	r.POST("/ladder", positionHandler.CalculateLadder)
	r.GET("/settings", settingsHandler.GetSettings)
	r.PUT("/settings", settingsHandler.UpdateSettings)
	return r
}

func performJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSavePositionEndpoint(t *testing.T) {
	t.Run("creates a position", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPost, "/positions", gin.H{
			"tickerSymbol": "AAPL",
			"avgPrice":     150.0,
			"numShares":    10,
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var resp struct {
			Position struct {
				ID           string  `json:"id"`
				TickerSymbol string  `json:"tickerSymbol"`
				PriceStep    float64 `json:"priceStep"`
			} `json:"position"`
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if resp.Position.ID == "" || resp.Position.TickerSymbol != "AAPL" {
			t.Errorf("position = %+v", resp.Position)
		}
		if resp.Position.PriceStep != 1.5 {
			t.Errorf("PriceStep = %v, want 1.5", resp.Position.PriceStep)
		}
	})

	t.Run("rejects a malformed ticker", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPost, "/positions", gin.H{
			"tickerSymbol": "not a ticker!!",
			"avgPrice":     10.0,
			"numShares":    1,
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestPortfolioEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/positions", gin.H{
		"tickerSymbol": "MSFT", "avgPrice": 400.0, "numShares": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %s", w.Body.String())
	}

	w = performJSON(r, http.MethodGet, "/portfolio", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var view struct {
		Positions     []json.RawMessage `json:"positions"`
		Columns       []string          `json:"columns"`
		SortDirection string            `json:"sortDirection"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	if len(view.Positions) != 1 {
		t.Errorf("positions = %d, want 1", len(view.Positions))
	}
	if len(view.Columns) == 0 || view.SortDirection != "asc" {
		t.Errorf("columns = %v, direction = %q", view.Columns, view.SortDirection)
	}
}

func TestSortEndpoint(t *testing.T) {
	t.Run("toggles on repeated clicks", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPut, "/portfolio/sort", gin.H{"column": "profit"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		w = performJSON(r, http.MethodPut, "/portfolio/sort", gin.H{"column": "profit"})
		var resp struct {
			SortDirection string `json:"sortDirection"`
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if resp.SortDirection != "desc" {
			t.Errorf("direction = %q, want desc", resp.SortDirection)
		}
	})

	t.Run("rejects an unknown column", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPut, "/portfolio/sort", gin.H{"column": "sharpeRatio"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("rejects a bad explicit direction", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPut, "/portfolio/sort", gin.H{"column": "profit", "direction": "sideways"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestLadderEndpoints(t *testing.T) {
	t.Run("ad-hoc ladder calculation", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPost, "/ladder", gin.H{
			"tickerSymbol": "ABC",
			"avgPrice":     100.0,
			"numShares":    10,
			"priceStep":    5.0,
			"levels":       2,
			"currentPrice": 105.0,
		})

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var resp struct {
			Ladder []struct {
				PriceLevel float64 `json:"priceLevel"`
				ProfitLoss float64 `json:"profitLoss"`
				Highlight  bool    `json:"highlight"`
			} `json:"ladder"`
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		if len(resp.Ladder) != 5 {
			t.Fatalf("rows = %d, want 5", len(resp.Ladder))
		}
		if !resp.Ladder[3].Highlight || resp.Ladder[3].ProfitLoss != 50 {
			t.Errorf("row at 105 = %+v", resp.Ladder[3])
		}
	})

	t.Run("stored position ladder rejects a bad id", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodGet, "/positions/not-a-uuid/ladder", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestSettingsEndpoints(t *testing.T) {
	t.Run("credentials change the resolved provider without echoing keys", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodGet, "/settings", nil)
		var before struct {
			Provider string `json:"provider"`
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &before))
		if before.Provider != "none" {
			t.Errorf("provider = %q, want none", before.Provider)
		}

		w = performJSON(r, http.MethodPut, "/settings", gin.H{"finnhubApiKey": "fh-secret"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if bytes.Contains(w.Body.Bytes(), []byte("fh-secret")) {
			t.Error("credential echoed in the response")
		}

		var after struct {
			Provider string `json:"provider"`
		}
		testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &after))
		if after.Provider != "finnhub" {
			t.Errorf("provider = %q, want finnhub", after.Provider)
		}
	})

	t.Run("rejects an out-of-range refresh interval", func(t *testing.T) {
		r := setupRouter(t)

		w := performJSON(r, http.MethodPut, "/settings", gin.H{"refreshInterval": -5})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestHideTickerEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := performJSON(r, http.MethodPost, "/positions", gin.H{
		"tickerSymbol": "NVDA", "avgPrice": 100.0, "numShares": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed failed: %s", w.Body.String())
	}

	w = performJSON(r, http.MethodPut, "/tickers/NVDA/hide", gin.H{"hide": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = performJSON(r, http.MethodGet, "/portfolio", nil)
	var view struct {
		Positions []json.RawMessage `json:"positions"`
	}
	testutil.AssertNoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	if len(view.Positions) != 0 {
		t.Errorf("hidden ticker still in view: %d rows", len(view.Positions))
	}
}
