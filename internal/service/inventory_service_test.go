package service_test

import (
	"context"
	"errors"
	"testing"

	"gemstore/internal/domain"
	"gemstore/internal/dto"
	"gemstore/internal/model"
	"gemstore/internal/repository"
	"gemstore/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo(products ...*model.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = p
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Active && p.StockQuantity <= p.LowStockAt {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, newStock int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.StockQuantity = newStock
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubMovementRepo captures appended ledger rows for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != "" && m.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubSettingsRepo serves a fixed settings row.
type stubSettingsRepo struct {
	settings model.StoreSettings
}

func defaultSettings() *stubSettingsRepo {
	return &stubSettingsRepo{settings: model.StoreSettings{
		StoreName:            "Gemstore",
		Currency:             "USD",
		LowStockThreshold:    5,
		NotifyOnStatusChange: false,
	}}
}

func (r *stubSettingsRepo) Get(_ context.Context) (*model.StoreSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *stubSettingsRepo) GetTx(_ *gorm.DB) (*model.StoreSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *stubSettingsRepo) Update(_ context.Context, s *model.StoreSettings) error {
	r.settings = *s
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func newProduct(sku string, stock int) *model.Product {
	return &model.Product{
		ID:            uuid.New(),
		SKU:           sku,
		Name:          "Gold Ring " + sku,
		CostPrice:     decimal.NewFromInt(50),
		SalePrice:     decimal.NewFromInt(120),
		StockQuantity: stock,
		LowStockAt:    5,
		Active:        true,
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestApplyAdjustment_InIncrementsStock(t *testing.T) {
	p := newProduct("RING-001", 10)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(products, movements, defaultSettings(), nil)

	resp, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementIn,
		Quantity:  15,
		Reason:    "restock shipment",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 25, resp.StockQuantity)
	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, model.MovementIn, m.Type)
	assert.Equal(t, 15, m.Quantity)
	assert.Equal(t, 10, m.PreviousStock)
	assert.Equal(t, 25, m.NewStock)
	assert.Equal(t, m.PreviousStock+m.Quantity, m.NewStock)
}

func TestApplyAdjustment_OutDecrementsStock(t *testing.T) {
	p := newProduct("RING-002", 10)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(products, movements, defaultSettings(), nil)

	resp, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementOut,
		Quantity:  4,
		Reason:    "damaged in showroom",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 6, resp.StockQuantity)
	// OUT is stored as a negative effective delta.
	require.Len(t, movements.movements, 1)
	assert.Equal(t, -4, movements.movements[0].Quantity)
	assert.Equal(t, 6, movements.movements[0].NewStock)
}

func TestApplyAdjustment_SignedAdjustment(t *testing.T) {
	p := newProduct("RING-003", 10)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(products, movements, defaultSettings(), nil)

	resp, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementAdjustment,
		Quantity:  -3,
		Reason:    "cycle count correction",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 7, resp.StockQuantity)
	assert.Equal(t, -3, movements.movements[0].Quantity)
}

func TestApplyAdjustment_InsufficientStockRejected(t *testing.T) {
	p := newProduct("RING-004", 3)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(products, movements, defaultSettings(), nil)

	_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementOut,
		Quantity:  5,
		Reason:    "oversell attempt",
	}, nil)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Current)

	// Rejected adjustment must leave both the product and the ledger untouched.
	assert.Equal(t, 3, p.StockQuantity)
	assert.Empty(t, movements.movements)
}

func TestApplyAdjustment_AllowNegativeStock(t *testing.T) {
	p := newProduct("RING-005", 3)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	settings := defaultSettings()
	settings.settings.AllowNegativeStock = true
	svc := service.NewInventoryService(products, movements, settings, nil)

	resp, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementOut,
		Quantity:  5,
		Reason:    "backorder fulfillment",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, -2, resp.StockQuantity)
	assert.Equal(t, -2, movements.movements[0].NewStock)
}

func TestApplyAdjustment_ZeroQuantityRejected(t *testing.T) {
	p := newProduct("RING-006", 3)
	svc := service.NewInventoryService(newStubProductRepo(p), &stubMovementRepo{}, defaultSettings(), nil)

	_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementIn,
		Quantity:  0,
		Reason:    "noop",
	}, nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), "non-zero quantity required")
}

func TestApplyAdjustment_EmptyReasonRejected(t *testing.T) {
	p := newProduct("RING-007", 3)
	svc := service.NewInventoryService(newStubProductRepo(p), &stubMovementRepo{}, defaultSettings(), nil)

	_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementIn,
		Quantity:  5,
	}, nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), "reason required")
}

func TestApplyAdjustment_NegativeMagnitudeRejectedForInOut(t *testing.T) {
	p := newProduct("RING-008", 3)
	svc := service.NewInventoryService(newStubProductRepo(p), &stubMovementRepo{}, defaultSettings(), nil)

	for _, typ := range []string{model.MovementIn, model.MovementOut} {
		_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
			ProductID: p.ID.String(),
			Type:      typ,
			Quantity:  -5,
			Reason:    "negative magnitude",
		}, nil)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr, "type %s", typ)
	}
}

func TestApplyAdjustment_UnknownProduct(t *testing.T) {
	svc := service.NewInventoryService(newStubProductRepo(), &stubMovementRepo{}, defaultSettings(), nil)

	_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: uuid.NewString(),
		Type:      model.MovementIn,
		Quantity:  5,
		Reason:    "ghost product",
	}, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyAdjustment_RecordsActor(t *testing.T) {
	p := newProduct("RING-009", 10)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(newStubProductRepo(p), movements, defaultSettings(), nil)
	actor := uuid.New()

	_, err := svc.ApplyAdjustment(context.Background(), dto.AdjustStockRequest{
		ProductID: p.ID.String(),
		Type:      model.MovementAdjustment,
		Quantity:  2,
		Reason:    "manual correction",
	}, &actor)

	require.NoError(t, err)
	require.NotNil(t, movements.movements[0].ActorID)
	assert.Equal(t, actor, *movements.movements[0].ActorID)
}

func TestLedgerInvariant_SequentialAdjustments(t *testing.T) {
	p := newProduct("RING-010", 0)
	products := newStubProductRepo(p)
	movements := &stubMovementRepo{}
	svc := service.NewInventoryService(products, movements, defaultSettings(), nil)

	steps := []dto.AdjustStockRequest{
		{ProductID: p.ID.String(), Type: model.MovementIn, Quantity: 20, Reason: "initial intake"},
		{ProductID: p.ID.String(), Type: model.MovementOut, Quantity: 7, Reason: "showroom transfer"},
		{ProductID: p.ID.String(), Type: model.MovementAdjustment, Quantity: -1, Reason: "cycle count"},
		{ProductID: p.ID.String(), Type: model.MovementIn, Quantity: 3, Reason: "supplier return"},
	}
	for _, req := range steps {
		_, err := svc.ApplyAdjustment(context.Background(), req, nil)
		require.NoError(t, err)
	}

	require.Len(t, movements.movements, len(steps))
	prev := 0
	for i, m := range movements.movements {
		assert.Equal(t, prev, m.PreviousStock, "movement %d", i)
		assert.Equal(t, m.PreviousStock+m.Quantity, m.NewStock, "movement %d", i)
		prev = m.NewStock
	}
	assert.Equal(t, 15, p.StockQuantity)
}

func TestListAlerts_LowStockOnly(t *testing.T) {
	low := newProduct("RING-011", 2)
	ok := newProduct("RING-012", 50)
	inactive := newProduct("RING-013", 1)
	inactive.Active = false
	svc := service.NewInventoryService(newStubProductRepo(low, ok, inactive), &stubMovementRepo{}, defaultSettings(), nil)

	alerts, err := svc.ListAlerts(context.Background())

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "RING-011", alerts[0].SKU)
}
