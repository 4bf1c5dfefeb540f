package service

import (
	"context"
	"fmt"

	"gemstore/internal/domain"
	"gemstore/internal/dto"
	"gemstore/internal/model"
	"gemstore/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventoryService owns the stock adjustment ledger: every change to a
// product's stock quantity goes through ApplyAdjustment (admin-triggered) or
// the transactional helpers used by the order flow, and every change appends
// exactly one StockMovement row in the same transaction.
type InventoryService interface {
	ApplyAdjustment(ctx context.Context, req dto.AdjustStockRequest, actorID *uuid.UUID) (*dto.AdjustStockResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	ListAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)

	// Transactional building blocks for the order flow. The caller owns the
	// transaction; both lock the product row before mutating.
	CommitStockTx(tx *gorm.DB, productID uuid.UUID, quantity int, reason string, orderID uuid.UUID) error
	RestockTx(tx *gorm.DB, productID uuid.UUID, quantity int, reason string, orderID uuid.UUID, actorID *uuid.UUID) error
}

type inventoryService struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	settings  repository.SettingsRepository
	rdb       *redis.Client
}

func NewInventoryService(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	settings repository.SettingsRepository,
	rdb *redis.Client,
) InventoryService {
	return &inventoryService{products: products, movements: movements, settings: settings, rdb: rdb}
}

// invalidateCatalog drops the storefront cache entry after a stock change so
// the public in_stock flag does not serve stale data for a full TTL.
// Best effort.
func (s *inventoryService) invalidateCatalog(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey(sku)).Err(); err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("catalog cache invalidation failed")
	}
}

// effectiveDelta normalizes the admin-entered quantity into a signed delta.
// IN and OUT take a positive magnitude; ADJUSTMENT is signed as given.
func effectiveDelta(movementType string, quantity int) (int, error) {
	switch movementType {
	case model.MovementIn:
		if quantity < 0 {
			return 0, domain.NewValidation("quantity for IN must be a positive magnitude")
		}
		return quantity, nil
	case model.MovementOut:
		if quantity < 0 {
			return 0, domain.NewValidation("quantity for OUT must be a positive magnitude")
		}
		return -quantity, nil
	case model.MovementAdjustment:
		return quantity, nil
	default:
		return 0, domain.NewValidation("unknown movement type %q", movementType)
	}
}

func (s *inventoryService) ApplyAdjustment(ctx context.Context, req dto.AdjustStockRequest, actorID *uuid.UUID) (*dto.AdjustStockResponse, error) {
	if req.Quantity == 0 {
		return nil, domain.NewValidation("non-zero quantity required")
	}
	if req.Reason == "" {
		return nil, domain.NewValidation("reason required")
	}
	delta, err := effectiveDelta(req.Type, req.Quantity)
	if err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, domain.NewValidation("invalid product_id")
	}
	var variantID *uuid.UUID
	if req.VariantID != nil {
		vid, err := uuid.Parse(*req.VariantID)
		if err != nil {
			return nil, domain.NewValidation("invalid variant_id")
		}
		variantID = &vid
	}

	var movement model.StockMovement
	var sku string
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		// Row lock: concurrent adjustments against the same product serialize
		// here so the previous→new computation never loses an update.
		product, err := s.products.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		sku = product.SKU

		previous := product.StockQuantity
		next := previous + delta

		if next < 0 {
			cfg, err := s.settings.GetTx(tx)
			if err != nil {
				return err
			}
			if !cfg.AllowNegativeStock {
				return &domain.InsufficientStockError{
					ProductID: productID.String(),
					Current:   previous,
					Requested: delta,
				}
			}
		}

		if err := s.products.UpdateStockTx(tx, productID, next); err != nil {
			return err
		}

		movement = model.StockMovement{
			ProductID:     productID,
			VariantID:     variantID,
			Type:          req.Type,
			Quantity:      delta,
			PreviousStock: previous,
			NewStock:      next,
			Reason:        req.Reason,
			ActorID:       actorID,
		}
		return s.movements.CreateTx(tx, &movement)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidateCatalog(ctx, sku)

	return &dto.AdjustStockResponse{
		Movement:      movementToResponse(&movement),
		StockQuantity: movement.NewStock,
	}, nil
}

// CommitStockTx deducts ordered quantity from a product inside the caller's
// transaction and records an OUT movement referencing the order. Order
// placement always enforces availability — AllowNegativeStock does not apply
// to checkout.
func (s *inventoryService) CommitStockTx(tx *gorm.DB, productID uuid.UUID, quantity int, reason string, orderID uuid.UUID) error {
	product, err := s.products.FindByIDForUpdateTx(tx, productID)
	if err != nil {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	previous := product.StockQuantity
	next := previous - quantity
	if next < 0 {
		return &domain.InsufficientStockError{
			ProductID: productID.String(),
			Current:   previous,
			Requested: -quantity,
		}
	}
	if err := s.products.UpdateStockTx(tx, productID, next); err != nil {
		return err
	}
	ref := orderID
	if err := s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:     productID,
		Type:          model.MovementOut,
		Quantity:      -quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        reason,
		ReferenceID:   &ref,
	}); err != nil {
		return err
	}
	// Dropping the cache entry for a rolled-back tx only costs a reload.
	s.invalidateCatalog(context.Background(), product.SKU)
	return nil
}

// RestockTx returns quantity to a product's stock inside the caller's
// transaction, recording a RETURN movement referencing the order.
func (s *inventoryService) RestockTx(tx *gorm.DB, productID uuid.UUID, quantity int, reason string, orderID uuid.UUID, actorID *uuid.UUID) error {
	product, err := s.products.FindByIDForUpdateTx(tx, productID)
	if err != nil {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	previous := product.StockQuantity
	next := previous + quantity
	if err := s.products.UpdateStockTx(tx, productID, next); err != nil {
		return err
	}
	ref := orderID
	if err := s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:     productID,
		Type:          model.MovementReturn,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reason:        reason,
		ReferenceID:   &ref,
		ActorID:       actorID,
	}); err != nil {
		return err
	}
	s.invalidateCatalog(context.Background(), product.SKU)
	return nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, len(movements))
	for i := range movements {
		items[i] = movementToResponse(&movements[i])
	}
	return &dto.MovementListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventoryService) ListAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertResponse, len(products))
	for i, p := range products {
		alerts[i] = dto.StockAlertResponse{
			ProductID:     p.ID.String(),
			SKU:           p.SKU,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			LowStockAt:    p.LowStockAt,
		}
	}
	return alerts, nil
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:            m.ID.String(),
		ProductID:     m.ProductID.String(),
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.VariantID != nil {
		v := m.VariantID.String()
		resp.VariantID = &v
	}
	if m.ReferenceID != nil {
		r := m.ReferenceID.String()
		resp.ReferenceID = &r
	}
	return resp
}
