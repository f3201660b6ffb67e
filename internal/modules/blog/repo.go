package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/shared/slug"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListPublished returns published posts, newest first.
func (r *Repo) ListPublished(ctx context.Context, limit, offset int) ([]Post, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *Repo) GetBySlug(ctx context.Context, s string) (Post, error) {
	var p Post
	err := r.db.WithContext(ctx).First(&p, "slug = ?", s).Error
	return p, err
}

func (r *Repo) Create(ctx context.Context, title, body, coverURL string, publishedAt *time.Time) (Post, error) {
	p := Post{
		ID:          uuid.NewString(),
		Slug:        slug.FromName(title),
		Title:       title,
		Body:        body,
		CoverURL:    coverURL,
		PublishedAt: publishedAt,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Post{}, err
	}
	return p, nil
}

func (r *Repo) ListPartners(ctx context.Context) ([]Partner, error) {
	var partners []Partner
	err := r.db.WithContext(ctx).Order("name ASC").Find(&partners).Error
	return partners, err
}

func (r *Repo) GetPartnerBySlug(ctx context.Context, s string) (Partner, error) {
	var p Partner
	err := r.db.WithContext(ctx).First(&p, "slug = ?", s).Error
	return p, err
}

func (r *Repo) CreatePartner(ctx context.Context, name, body, logoURL, siteURL string) (Partner, error) {
	p := Partner{
		ID:        uuid.NewString(),
		Slug:      slug.FromName(name),
		Name:      name,
		Body:      body,
		LogoURL:   logoURL,
		SiteURL:   siteURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Partner{}, err
	}
	return p, nil
}
