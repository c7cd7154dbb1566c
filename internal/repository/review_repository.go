package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/model"
)

// ReviewRepository defines review persistence operations. Lookups are
// scoped to a title so a review id cannot be reached through the wrong
// nesting.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Save(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, titleID, reviewID uint) (*model.Review, error)
	ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]model.Review, error)
	Delete(ctx context.Context, review *model.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review; the composite unique index on
// (title_id, author_id) makes a duplicate submission surface as
// gorm.ErrDuplicatedKey instead of racing a prior existence check.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Save(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit("Author", "Title").Save(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]model.Review, error) {
	q := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var reviews []model.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Delete(review).Error
}
