package repository

import (
	"context"
	"errors"

	"gemstore/internal/model"

	"gorm.io/gorm"
)

// SettingsRepository manages the store_settings singleton row.
// Get creates the row with defaults on first read.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.StoreSettings, error)
	GetTx(tx *gorm.DB) (*model.StoreSettings, error)
	Update(ctx context.Context, s *model.StoreSettings) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.StoreSettings, error) {
	return getSettings(r.db.WithContext(ctx))
}

func (r *settingsRepo) GetTx(tx *gorm.DB) (*model.StoreSettings, error) {
	return getSettings(tx)
}

func getSettings(db *gorm.DB) (*model.StoreSettings, error) {
	var s model.StoreSettings
	err := db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.StoreSettings{
			StoreName:            "Gemstore",
			Currency:             "USD",
			LowStockThreshold:    5,
			NotifyOnStatusChange: true,
		}
		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *settingsRepo) Update(ctx context.Context, s *model.StoreSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
