package service

import (
	"context"
	"fmt"

	"gemstore/internal/domain"
	"gemstore/internal/dto"
	"gemstore/internal/model"
	"gemstore/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &model.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = *categoryToResponse(&categories[i])
	}
	return resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Slug != "" {
		c.Slug = req.Slug
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Active:      c.Active,
	}
}
