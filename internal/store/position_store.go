// Package store implements the local persistence layer: a keyed Positions
// collection with a secondary ticker index, and a flat Settings collection.
// Every failure is wrapped as a STORAGE_ERROR AppError carrying the cause;
// callers decide whether to surface it or degrade to an empty result.
package store

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/models"
)

// PositionStore provides keyed access to saved positions.
type PositionStore struct {
	db *gorm.DB
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(db *gorm.DB) *PositionStore {
	return &PositionStore{db: db}
}

// Get returns the position with the given primary key, or ErrPositionNotFound.
func (s *PositionStore) Get(id string) (*models.Position, error) {
	var position models.Position
	if err := s.db.First(&position, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPositionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &position, nil
}

// GetAll returns every saved position, hidden ones included.
func (s *PositionStore) GetAll() ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Find(&positions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return positions, nil
}

// GetAllByTicker returns every position sharing the given ticker symbol,
// via the secondary index.
func (s *PositionStore) GetAllByTicker(tickerSymbol string) ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Where("ticker_symbol = ?", tickerSymbol).Find(&positions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return positions, nil
}

// ListTickers returns the distinct ticker symbols across all positions,
// in lexical order.
func (s *PositionStore) ListTickers() ([]string, error) {
	var tickers []string
	if err := s.db.Model(&models.Position{}).
		Distinct("ticker_symbol").
		Order("ticker_symbol").
		Pluck("ticker_symbol", &tickers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return tickers, nil
}

// Put upserts a position by its primary key. A position without an ID is
// created (the BeforeCreate hook assigns one); a position with an ID is
// written in place.
func (s *PositionStore) Put(position *models.Position) error {
	if err := s.db.Save(position).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// PutAll upserts a batch of positions in one transaction, so a malformed
// batch leaves no partial write behind.
func (s *PositionStore) PutAll(positions []models.Position) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range positions {
			if txErr := tx.Save(&positions[i]).Error; txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// Delete removes the position with the given primary key.
func (s *PositionStore) Delete(id string) error {
	result := s.db.Delete(&models.Position{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPositionNotFound
	}
	return nil
}
