// Package settings provides typed access to the persisted settings
// collection: view state (column order, sort), the refresh interval,
// and market-data API credentials.
package settings

import "github.com/asubedar/profit-ladder/internal/store"

// Canonical settings keys. The credential key names match what the
// providers themselves call them, so a user can paste straight from the
// provider dashboard.
const (
	KeyVisibleColumns  = "visibleColumns"
	KeySortColumn      = "sortColumn"
	KeySortDirection   = "sortDirection"
	KeyRefreshInterval = "refreshInterval"
	KeyAlpacaKeyID     = "APCA_API_KEY_ID"
	KeyAlpacaSecret    = "APCA_API_SECRET_KEY"
	KeyFinnhubAPIKey   = "finnhubApiKey"
)

// Sort directions.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Service reads and writes typed settings values.
type Service struct {
	store *store.SettingStore
}

// NewService creates a new settings Service.
func NewService(settingStore *store.SettingStore) *Service {
	return &Service{store: settingStore}
}

// VisibleColumns returns the persisted column order. found is false when the
// user has never customized columns and the caller's default applies.
func (s *Service) VisibleColumns() (columns []string, found bool, err error) {
	found, err = s.store.Get(KeyVisibleColumns, &columns)
	return columns, found, err
}

// SetVisibleColumns persists the column order.
func (s *Service) SetVisibleColumns(columns []string) error {
	return s.store.Put(KeyVisibleColumns, columns)
}

// SortState returns the persisted sort column and direction. An empty column
// means no sort is applied; direction defaults to ascending.
func (s *Service) SortState() (column, direction string, err error) {
	if _, err = s.store.Get(KeySortColumn, &column); err != nil {
		return "", "", err
	}
	direction = DirectionAsc
	if _, err = s.store.Get(KeySortDirection, &direction); err != nil {
		return "", "", err
	}
	if direction != DirectionDesc {
		direction = DirectionAsc
	}
	return column, direction, nil
}

// SetSortState persists the sort column and direction.
func (s *Service) SetSortState(column, direction string) error {
	if err := s.store.Put(KeySortColumn, column); err != nil {
		return err
	}
	return s.store.Put(KeySortDirection, direction)
}

// RefreshInterval returns the auto-refresh interval in seconds; 0 disables
// auto-refresh and is the default.
func (s *Service) RefreshInterval() (int, error) {
	var interval int
	if _, err := s.store.Get(KeyRefreshInterval, &interval); err != nil {
		return 0, err
	}
	if interval < 0 {
		interval = 0
	}
	return interval, nil
}

// SetRefreshInterval persists the auto-refresh interval in seconds.
func (s *Service) SetRefreshInterval(seconds int) error {
	return s.store.Put(KeyRefreshInterval, seconds)
}

// SetCredential stores one API credential under its canonical key.
func (s *Service) SetCredential(key, value string) error {
	return s.store.Put(key, value)
}

// credential reads a credential, treating a read failure as absent so a
// broken settings row never blocks a refresh cycle.
func (s *Service) credential(key string) string {
	var value string
	if _, err := s.store.Get(key, &value); err != nil {
		return ""
	}
	return value
}

// ResetViewState rewrites the view settings to their defaults: the given
// column order, no sort column, ascending direction.
func (s *Service) ResetViewState(defaultColumns []string) error {
	if err := s.store.Put(KeyVisibleColumns, defaultColumns); err != nil {
		return err
	}
	return s.SetSortState("", DirectionAsc)
}
