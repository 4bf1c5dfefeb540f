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
)

type BlogService interface {
	Create(ctx context.Context, req dto.CreateBlogPostRequest, authorID *uuid.UUID) (*dto.BlogPostResponse, error)
	GetBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error)
	List(ctx context.Context, publishedOnly bool) ([]dto.BlogPostResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogService struct {
	repo repository.BlogRepository
}

func NewBlogService(repo repository.BlogRepository) BlogService {
	return &blogService{repo: repo}
}

func (s *blogService) Create(ctx context.Context, req dto.CreateBlogPostRequest, authorID *uuid.UUID) (*dto.BlogPostResponse, error) {
	p := &model.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Body:      req.Body,
		Published: req.Published,
		AuthorID:  authorID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return blogToResponse(p), nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*dto.BlogPostResponse, error) {
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("blog post %q: %w", slug, domain.ErrNotFound)
	}
	return blogToResponse(p), nil
}

func (s *blogService) List(ctx context.Context, publishedOnly bool) ([]dto.BlogPostResponse, error) {
	posts, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BlogPostResponse, len(posts))
	for i := range posts {
		resp[i] = *blogToResponse(&posts[i])
	}
	return resp, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("blog post %s: %w", id, domain.ErrNotFound)
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Slug != "" {
		p.Slug = req.Slug
	}
	if req.Body != "" {
		p.Body = req.Body
	}
	if req.Published != nil {
		p.Published = *req.Published
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return blogToResponse(p), nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func blogToResponse(p *model.BlogPost) *dto.BlogPostResponse {
	return &dto.BlogPostResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		Published: p.Published,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
