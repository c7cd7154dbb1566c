package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/cache"
	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

const ratingCacheTTL = 5 * time.Minute

// TitleInput carries title create/update fields. Nil pointers mean
// "leave unchanged" on partial updates.
type TitleInput struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string  // category slug
	Genres      []string // genre slugs; nil leaves links unchanged
}

// TitleService handles titles and their derived ratings.
type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter) ([]model.Title, error)
	Get(ctx context.Context, id uint) (*model.Title, error)
	Create(ctx context.Context, in TitleInput) (*model.Title, error)
	Update(ctx context.Context, id uint, in TitleInput) (*model.Title, error)
	Delete(ctx context.Context, id uint) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	cache        *cache.Client
}

// NewTitleService creates a new title service.
func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	cacheClient *cache.Client,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		cache:        cacheClient,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter) ([]model.Title, error) {
	titles, err := s.titleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	ids := make([]uint, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	stats, err := s.titleRepo.ScoreStats(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("score stats: %w", err)
	}
	ratings := make(map[uint]*float64, len(stats))
	for _, st := range stats {
		ratings[st.TitleID] = meanScore(st.Total, st.Count)
	}
	for i := range titles {
		titles[i].Rating = ratings[titles[i].ID]
	}
	return titles, nil
}

func (s *titleService) Get(ctx context.Context, id uint) (*model.Title, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("lookup title: %w", err)
	}

	rating, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	title.Rating = rating
	return title, nil
}

func (s *titleService) Create(ctx context.Context, in TitleInput) (*model.Title, error) {
	if in.Name == nil || in.Year == nil {
		return nil, apierrors.ErrYearInvalid
	}
	if err := validateYear(*in.Year); err != nil {
		return nil, err
	}

	title := &model.Title{Name: *in.Name, Year: *in.Year}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if err := s.resolveCategory(ctx, title, in.Category); err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrTitleExists
		}
		return nil, fmt.Errorf("create title: %w", err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, id uint, in TitleInput) (*model.Title, error) {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrTitleNotFound
		}
		return nil, fmt.Errorf("lookup title: %w", err)
	}

	if in.Name != nil {
		title.Name = *in.Name
	}
	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		title.Year = *in.Year
	}
	if in.Description != nil {
		title.Description = *in.Description
	}
	if in.Category != nil {
		if err := s.resolveCategory(ctx, title, in.Category); err != nil {
			return nil, err
		}
	}

	if err := s.titleRepo.Save(ctx, title); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrTitleExists
		}
		return nil, fmt.Errorf("update title: %w", err)
	}

	if in.Genres != nil {
		genres, err := s.resolveGenres(ctx, in.Genres)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Delete(ctx context.Context, id uint) error {
	title, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrTitleNotFound
		}
		return fmt.Errorf("lookup title: %w", err)
	}
	if err := s.titleRepo.Delete(ctx, title); err != nil {
		return fmt.Errorf("delete title: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.RatingKey(id))
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, title *model.Title, slug *string) error {
	if slug == nil {
		return nil
	}
	category, err := s.categoryRepo.FindBySlug(ctx, *slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrUnknownCategory
		}
		return fmt.Errorf("lookup category: %w", err)
	}
	title.CategoryID = &category.ID
	title.Category = category
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]model.Genre, error) {
	// Repeated slugs resolve to a single row, so compare against the
	// deduplicated count.
	seen := make(map[string]struct{}, len(slugs))
	unique := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.FindBySlugs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("lookup genres: %w", err)
	}
	if len(genres) != len(unique) {
		return nil, apierrors.ErrUnknownGenre
	}
	return genres, nil
}

// rating returns the cached mean review score, recomputing on a miss.
// A title without reviews has no rating at all, never zero.
func (s *titleService) rating(ctx context.Context, titleID uint) (*float64, error) {
	key := cache.RatingKey(titleID)
	if raw, _ := s.cache.Get(ctx, key); raw != nil {
		if v, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return &v, nil
		}
	}

	stats, err := s.titleRepo.ScoreStats(ctx, []uint{titleID})
	if err != nil {
		return nil, fmt.Errorf("score stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, nil
	}
	rating := meanScore(stats[0].Total, stats[0].Count)
	if rating != nil {
		_ = s.cache.Set(ctx, key, []byte(strconv.FormatFloat(*rating, 'f', -1, 64)), ratingCacheTTL)
	}
	return rating, nil
}

// meanScore computes the arithmetic mean rounded to one decimal place.
func meanScore(total, count int64) *float64 {
	if count == 0 {
		return nil
	}
	mean := decimal.NewFromInt(total).
		Div(decimal.NewFromInt(count)).
		Round(1).
		InexactFloat64()
	return &mean
}

func validateYear(year int) error {
	if year < 0 || year > time.Now().Year() {
		return apierrors.ErrYearInvalid
	}
	return nil
}
