package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/model"
)

// GenreRepository defines genre persistence operations.
type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.Genre, error)
	Delete(ctx context.Context, genre *model.Genre) error
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository builds a GORM-backed repository.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	var genre model.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	var genres []model.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Genre, error) {
	q := r.db.WithContext(ctx).Model(&model.Genre{}).Order("slug")
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+likePattern(search)+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var genres []model.Genre
	if err := q.Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// Delete removes the genre; join rows in title_genres go with it via
// the cascade on the join table.
func (r *genreRepository) Delete(ctx context.Context, genre *model.Genre) error {
	return r.db.WithContext(ctx).Delete(genre).Error
}
