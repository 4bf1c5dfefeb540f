package repository

import (
	"context"

	"gemstore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(ctx context.Context, p *model.BlogPost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error)
	Update(ctx context.Context, p *model.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type blogRepo struct{ db *gorm.DB }

func NewBlogRepository(db *gorm.DB) BlogRepository { return &blogRepo{db: db} }

func (r *blogRepo) Create(ctx context.Context, p *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *blogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *blogRepo) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error
	return &p, err
}

func (r *blogRepo) List(ctx context.Context, publishedOnly bool) ([]model.BlogPost, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = true")
	}
	var posts []model.BlogPost
	err := q.Find(&posts).Error
	return posts, err
}

func (r *blogRepo) Update(ctx context.Context, p *model.BlogPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *blogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BlogPost{}, id).Error
}
