package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/models"
)

// Export serializes every stored position as a pretty-printed JSON array.
func (m *Manager) Export() ([]byte, error) {
	positions, err := m.positions.GetAll()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(positions, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return data, nil
}

// Import fetches a JSON array of positions from the given URL and upserts
// every element by its existing key in one transaction. A payload that is
// not a JSON array is rejected with INVALID_FORMAT and nothing is written.
func (m *Manager) Import(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid import URL")
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.Wrap(apperrors.ErrNetwork, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrNetwork, err)
	}

	var positions []models.Position
	if err := json.Unmarshal(body, &positions); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidFormat, err)
	}

	if err := m.positions.PutAll(positions); err != nil {
		return 0, err
	}
	return len(positions), nil
}
