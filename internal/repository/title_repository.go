package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/model"
)

// TitleFilter narrows title listings.
type TitleFilter struct {
	Name     string // case-insensitive substring
	Year     *int   // exact match
	Category string // category slug
	Genre    string // genre slug
	Limit    int
	Offset   int
}

// ScoreStat is the per-title review aggregate used to derive ratings.
type ScoreStat struct {
	TitleID uint
	Total   int64
	Count   int64
}

// TitleRepository defines title persistence operations.
type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	Save(ctx context.Context, title *model.Title) error
	ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error
	FindByID(ctx context.Context, id uint) (*model.Title, error)
	List(ctx context.Context, filter TitleFilter) ([]model.Title, error)
	Delete(ctx context.Context, title *model.Title) error
	ScoreStats(ctx context.Context, titleIDs []uint) ([]ScoreStat, error)
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository builds a GORM-backed repository.
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

// Save persists scalar fields only; genre links go through ReplaceGenres.
func (r *titleRepository) Save(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *model.Title, genres []model.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	var title model.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter) ([]model.Title, error) {
	q := r.db.WithContext(ctx).Model(&model.Title{}).
		Preload("Category").
		Preload("Genres").
		Order("id")

	if filter.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ?", "%"+likePattern(filter.Name)+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var titles []model.Title
	if err := q.Find(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

func (r *titleRepository) Delete(ctx context.Context, title *model.Title) error {
	return r.db.WithContext(ctx).Delete(title).Error
}

// ScoreStats returns review sums and counts for the given titles.
// Titles without reviews simply do not appear in the result.
func (r *titleRepository) ScoreStats(ctx context.Context, titleIDs []uint) ([]ScoreStat, error) {
	var stats []ScoreStat
	if len(titleIDs) == 0 {
		return stats, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("title_id, SUM(score) AS total, COUNT(*) AS count").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
