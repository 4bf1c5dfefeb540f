package repository

import (
	"context"

	"gemstore/internal/dto"
	"gemstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the data access contract for orders and their
// append-only status event trail.
type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	UpdateTx(tx *gorm.DB, o *model.Order) error
	CreateEventTx(tx *gorm.DB, e *model.OrderStatusEvent) error
	NextOrderNumber(tx *gorm.DB) (int64, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := tx.Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	var orders []model.Order
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) UpdateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Save(o).Error
}

func (r *orderRepo) CreateEventTx(tx *gorm.DB, e *model.OrderStatusEvent) error {
	return tx.Create(e).Error
}

// NextOrderNumber allocates a sequential human-facing order number from a
// Postgres sequence. Created on first use so AutoMigrate stays sufficient.
func (r *orderRepo) NextOrderNumber(tx *gorm.DB) (int64, error) {
	if err := tx.Exec(`CREATE SEQUENCE IF NOT EXISTS order_number_seq START 1000`).Error; err != nil {
		return 0, err
	}
	var n int64
	err := tx.Raw(`SELECT nextval('order_number_seq')`).Scan(&n).Error
	return n, err
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
