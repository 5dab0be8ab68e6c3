package store

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/asubedar/profit-ladder/internal/errors"
	"github.com/asubedar/profit-ladder/internal/models"
)

// SettingStore provides key-value access to the settings collection.
// Values are JSON-encoded on the way in and decoded on the way out.
type SettingStore struct {
	db *gorm.DB
}

// NewSettingStore creates a new SettingStore.
func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get decodes the value stored under key into out. It returns false when no
// entry exists, leaving out untouched so the caller's default survives.
func (s *SettingStore) Get(key string, out any) (bool, error) {
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(setting.Value), out); err != nil {
		return false, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return true, nil
}

// Put writes value under key, overwriting any existing entry.
func (s *SettingStore) Put(key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	setting := models.Setting{Key: key, Value: string(encoded)}
	if err := s.db.Save(&setting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// Delete removes the entry under key. Deleting a missing key is a no-op.
func (s *SettingStore) Delete(key string) error {
	if err := s.db.Delete(&models.Setting{}, "key = ?", key).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}
