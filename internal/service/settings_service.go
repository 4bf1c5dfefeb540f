package service

import (
	"context"

	"gemstore/internal/dto"
	"gemstore/internal/repository"
)

type SettingsService interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{
		StoreName:            cfg.StoreName,
		Currency:             cfg.Currency,
		AllowNegativeStock:   cfg.AllowNegativeStock,
		LowStockThreshold:    cfg.LowStockThreshold,
		NotifyOnStatusChange: cfg.NotifyOnStatusChange,
	}, nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if req.StoreName != nil {
		cfg.StoreName = *req.StoreName
	}
	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}
	if req.AllowNegativeStock != nil {
		cfg.AllowNegativeStock = *req.AllowNegativeStock
	}
	if req.LowStockThreshold != nil {
		cfg.LowStockThreshold = *req.LowStockThreshold
	}
	if req.NotifyOnStatusChange != nil {
		cfg.NotifyOnStatusChange = *req.NotifyOnStatusChange
	}
	if err := s.repo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return s.Get(ctx)
}
