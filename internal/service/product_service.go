package service

import (
	"context"
	"fmt"
	"time"

	"gemstore/internal/domain"
	"gemstore/internal/dto"
	"gemstore/internal/model"
	"gemstore/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

// catalogCacheKey is shared with the storefront handler's read-through cache.
func catalogCacheKey(sku string) string { return "catalog:" + sku }

func (s *productService) invalidateCache(ctx context.Context, sku string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey(sku)).Err(); err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("catalog cache invalidation failed")
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		CostPrice:     req.CostPrice,
		SalePrice:     req.SalePrice,
		StockQuantity: req.StockQuantity,
		LowStockAt:    req.LowStockAt,
		Active:        true,
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, domain.NewValidation("invalid category_id")
		}
		p.CategoryID = &cid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, len(products))
	for i := range products {
		items[i] = *productToResponse(&products[i])
	}
	return &dto.ProductListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, domain.NewValidation("invalid category_id")
		}
		p.CategoryID = &cid
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		p.SalePrice = *req.SalePrice
	}
	if req.LowStockAt != nil {
		p.LowStockAt = *req.LowStockAt
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, p.SKU)
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, p.SKU)
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CostPrice:     p.CostPrice,
		SalePrice:     p.SalePrice,
		StockQuantity: p.StockQuantity,
		LowStockAt:    p.LowStockAt,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.CategoryID != nil {
		cid := p.CategoryID.String()
		resp.CategoryID = &cid
	}
	return resp
}
