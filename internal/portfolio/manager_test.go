package portfolio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/models"
	"github.com/asubedar/profit-ladder/internal/provider"
	"github.com/asubedar/profit-ladder/internal/settings"
	"github.com/asubedar/profit-ladder/internal/store"
	"github.com/asubedar/profit-ladder/internal/testutil"
)

func newTestManager(t *testing.T) (*Manager, *store.PositionStore, *settings.Service) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	positions := store.NewPositionStore(db)
	settingsService := settings.NewService(store.NewSettingStore(db))
	httpClient := &http.Client{}
	prices := provider.NewClient(httpClient)
	return NewManager(positions, settingsService, prices, httpClient), positions, settingsService
}

func TestSavePosition(t *testing.T) {
	t.Run("creates with defaults applied", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		position, err := m.SavePosition("aapl", 150, 10, 0, 0)
		testutil.AssertNoError(t, err)

		if position.TickerSymbol != "AAPL" {
			t.Errorf("ticker = %q, want AAPL", position.TickerSymbol)
		}
		if position.PriceStep != 1.5 {
			t.Errorf("PriceStep = %v, want 1.5 (1%% of avg)", position.PriceStep)
		}
		if position.Levels != 5 {
			t.Errorf("Levels = %d, want 5", position.Levels)
		}
	})

	t.Run("saving the same ticker updates rather than duplicates", func(t *testing.T) {
		m, positions, _ := newTestManager(t)

		first, err := m.SavePosition("TSLA", 200, 5, 2, 3)
		testutil.AssertNoError(t, err)

		second, err := m.SavePosition("TSLA", 210, 8, 2, 3)
		testutil.AssertNoError(t, err)

		if second.ID != first.ID {
			t.Errorf("upsert created a new row: %s vs %s", second.ID, first.ID)
		}

		all, err := positions.GetAll()
		testutil.AssertNoError(t, err)
		if len(all) != 1 {
			t.Fatalf("expected 1 position, got %d", len(all))
		}
		if all[0].AvgPrice != 210 || all[0].NumShares != 8 {
			t.Errorf("update not applied: %+v", all[0])
		}
	})

	t.Run("blank ticker is rejected", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, err := m.SavePosition("   ", 10, 1, 0, 0)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput.Code)
	})
}

func TestSetSort(t *testing.T) {
	t.Run("new column sorts ascending", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		column, direction, err := m.SetSort("profit", "")
		testutil.AssertNoError(t, err)
		if column != "profit" || direction != settings.DirectionAsc {
			t.Errorf("got %q/%q", column, direction)
		}
	})

	t.Run("same column toggles and persists", func(t *testing.T) {
		m, _, settingsService := newTestManager(t)

		_, _, err := m.SetSort("profit", "")
		testutil.AssertNoError(t, err)

		_, direction, err := m.SetSort("profit", "")
		testutil.AssertNoError(t, err)
		if direction != settings.DirectionDesc {
			t.Errorf("second click direction = %q, want desc", direction)
		}

		column, direction, err := settingsService.SortState()
		testutil.AssertNoError(t, err)
		if column != "profit" || direction != settings.DirectionDesc {
			t.Errorf("persisted state = %q/%q", column, direction)
		}

		_, direction, err = m.SetSort("profit", "")
		testutil.AssertNoError(t, err)
		if direction != settings.DirectionAsc {
			t.Errorf("third click direction = %q, want asc", direction)
		}
	})

	t.Run("explicit direction overrides the toggle", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, direction, err := m.SetSort("profit", settings.DirectionDesc)
		testutil.AssertNoError(t, err)
		if direction != settings.DirectionDesc {
			t.Errorf("direction = %q, want desc", direction)
		}

		_, direction, err = m.SetSort("profit", settings.DirectionDesc)
		testutil.AssertNoError(t, err)
		if direction != settings.DirectionDesc {
			t.Errorf("explicit direction toggled to %q", direction)
		}
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, _, err := m.SetSort("sharpeRatio", "")
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput.Code)
	})
}

func TestSetVisibleColumns(t *testing.T) {
	t.Run("normalizes and persists", func(t *testing.T) {
		m, _, settingsService := newTestManager(t)

		got, err := m.SetVisibleColumns([]string{"profit", "bogus", "profit", "tickerSymbol"})
		testutil.AssertNoError(t, err)
		if len(got) != 2 || got[0] != "profit" || got[1] != "tickerSymbol" {
			t.Errorf("got %v", got)
		}

		persisted, found, err := settingsService.VisibleColumns()
		testutil.AssertNoError(t, err)
		if !found || len(persisted) != 2 {
			t.Errorf("persisted %v found=%v", persisted, found)
		}
	})

	t.Run("all-unknown input is rejected", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, err := m.SetVisibleColumns([]string{"bogus", "alsoBogus"})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput.Code)
	})
}

func TestTickerVisibility(t *testing.T) {
	t.Run("hide flags every position of the ticker", func(t *testing.T) {
		m, positions, _ := newTestManager(t)

		_, err := m.SavePosition("NVDA", 100, 1, 0, 0)
		testutil.AssertNoError(t, err)
		_, err = m.SavePosition("AMD", 50, 1, 0, 0)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, m.SetTickerHidden("nvda", true))

		nvda, err := positions.GetAllByTicker("NVDA")
		testutil.AssertNoError(t, err)
		if !nvda[0].Hide {
			t.Error("NVDA not hidden")
		}
		amd, err := positions.GetAllByTicker("AMD")
		testutil.AssertNoError(t, err)
		if amd[0].Hide {
			t.Error("AMD hidden as a side effect")
		}
	})

	t.Run("hidden positions are excluded from the view", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, err := m.SavePosition("SHOW", 10, 1, 0, 0)
		testutil.AssertNoError(t, err)
		_, err = m.SavePosition("HIDE", 10, 1, 0, 0)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, m.SetTickerHidden("HIDE", true))

		view := m.Load(context.Background())
		if len(view.Positions) != 1 || view.Positions[0].TickerSymbol != "SHOW" {
			t.Errorf("view rows = %v", tickers(view.Positions))
		}
	})

	t.Run("ticker reads hidden only when every position is", func(t *testing.T) {
		m, positions, _ := newTestManager(t)

		a := &models.Position{TickerSymbol: "MIX", AvgPrice: 10, NumShares: 1, Hide: true}
		b := &models.Position{TickerSymbol: "MIX", AvgPrice: 12, NumShares: 2}
		testutil.AssertNoError(t, positions.Put(a))
		testutil.AssertNoError(t, positions.Put(b))

		states, err := m.ListTickers()
		testutil.AssertNoError(t, err)
		if len(states) != 1 || states[0].Hidden {
			t.Errorf("states = %+v, want MIX visible", states)
		}

		b.Hide = true
		testutil.AssertNoError(t, positions.Put(b))

		states, err = m.ListTickers()
		testutil.AssertNoError(t, err)
		if !states[0].Hidden {
			t.Error("MIX should read hidden once every position is")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("values cached quotes and applies the persisted sort", func(t *testing.T) {
		m, positions, settingsService := newTestManager(t)

		low := &models.Position{TickerSymbol: "LOW", AvgPrice: 10, NumShares: 1, LastPrice: 11}
		high := &models.Position{TickerSymbol: "HIGH", AvgPrice: 10, NumShares: 10, LastPrice: 20}
		testutil.AssertNoError(t, positions.Put(low))
		testutil.AssertNoError(t, positions.Put(high))
		testutil.AssertNoError(t, settingsService.SetSortState("profit", settings.DirectionDesc))

		view := m.Load(context.Background())

		if view.SortColumn != "profit" || view.SortDirection != settings.DirectionDesc {
			t.Errorf("sort state = %q/%q", view.SortColumn, view.SortDirection)
		}
		if len(view.Positions) != 2 || view.Positions[0].TickerSymbol != "HIGH" {
			t.Fatalf("order = %v, want HIGH first", tickers(view.Positions))
		}
		if view.Positions[0].Profit != 100 {
			t.Errorf("HIGH profit = %v, want 100", view.Positions[0].Profit)
		}
		if view.Totals.Profit != 101 {
			t.Errorf("totals profit = %v, want 101", view.Totals.Profit)
		}
	})

	t.Run("defaults the column layout when never customized", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		view := m.Load(context.Background())
		if len(view.Columns) != len(AvailableColumns) {
			t.Errorf("columns = %v", view.Columns)
		}
	})
}

func TestResetSettings(t *testing.T) {
	m, positions, settingsService := newTestManager(t)

	_, err := m.SavePosition("HID", 10, 1, 0, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, m.SetTickerHidden("HID", true))
	_, err = m.SetVisibleColumns([]string{"profit"})
	testutil.AssertNoError(t, err)
	_, _, err = m.SetSort("profit", "")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, m.ResetSettings())

	columns, _, err := settingsService.VisibleColumns()
	testutil.AssertNoError(t, err)
	if len(columns) != len(AvailableColumns) {
		t.Errorf("columns after reset = %v", columns)
	}
	column, direction, err := settingsService.SortState()
	testutil.AssertNoError(t, err)
	if column != "" || direction != settings.DirectionAsc {
		t.Errorf("sort after reset = %q/%q", column, direction)
	}
	hid, err := positions.GetAllByTicker("HID")
	testutil.AssertNoError(t, err)
	if hid[0].Hide {
		t.Error("position still hidden after reset")
	}
}

func TestImport(t *testing.T) {
	t.Run("imports a JSON array of positions", func(t *testing.T) {
		m, positions, _ := newTestManager(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"tickerSymbol": "AAPL", "avgPrice": 150, "numShares": 10},
				{"tickerSymbol": "MSFT", "avgPrice": 400, "numShares": 2}
			]`)
		}))
		defer server.Close()

		count, err := m.Import(context.Background(), server.URL)
		testutil.AssertNoError(t, err)
		if count != 2 {
			t.Errorf("count = %d, want 2", count)
		}

		all, err := positions.GetAll()
		testutil.AssertNoError(t, err)
		if len(all) != 2 {
			t.Errorf("stored %d positions, want 2", len(all))
		}
	})

	t.Run("non-array payload writes nothing", func(t *testing.T) {
		m, positions, _ := newTestManager(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"tickerSymbol": "AAPL", "avgPrice": 150}`)
		}))
		defer server.Close()

		_, err := m.Import(context.Background(), server.URL)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidFormat.Code)

		all, err := positions.GetAll()
		testutil.AssertNoError(t, err)
		if len(all) != 0 {
			t.Errorf("partial write: %d positions stored", len(all))
		}
	})

	t.Run("error status maps to a network error", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := m.Import(context.Background(), server.URL)
		testutil.AssertAppError(t, err, apperrors.ErrNetwork.Code)
	})
}

func TestExport(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.SavePosition("AAPL", 150, 10, 0, 0)
	testutil.AssertNoError(t, err)

	data, err := m.Export()
	testutil.AssertNoError(t, err)
	if len(data) == 0 || data[0] != '[' {
		t.Errorf("export is not a JSON array: %.40s", data)
	}
}
