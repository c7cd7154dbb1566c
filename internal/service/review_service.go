package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/auth"
	"github.com/owlproh/api-yamdb/internal/cache"
	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

// ReviewInput carries review update fields.
type ReviewInput struct {
	Text  *string
	Score *int
}

// ReviewService handles reviews nested under a title.
type ReviewService interface {
	ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]model.Review, error)
	Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error)
	Create(ctx context.Context, titleID uint, author *model.User, text string, score int) (*model.Review, error)
	Update(ctx context.Context, actor *model.User, titleID, reviewID uint, in ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, actor *model.User, titleID, reviewID uint) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	cache      *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository, cacheClient *cache.Client) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		cache:      cacheClient,
	}
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]model.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByTitle(ctx, titleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	for i := range reviews {
		decorateReview(&reviews[i])
	}
	return reviews, nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID uint) (*model.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}
	decorateReview(review)
	return review, nil
}

// Create inserts the author's review of the title. Uniqueness of
// (author, title) rides on the storage constraint, so two concurrent
// submissions cannot both succeed.
func (s *reviewService) Create(ctx context.Context, titleID uint, author *model.User, text string, score int) (*model.Review, error) {
	if score < 1 || score > 10 {
		return nil, apierrors.ErrScoreInvalid
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review := &model.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     text,
		Score:    score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrReviewExists
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.RatingKey(titleID))
	review.Author = author
	decorateReview(review)
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, actor *model.User, titleID, reviewID uint, in ReviewInput) (*model.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModifyContent(actor, review.AuthorID) {
		return nil, apierrors.ErrForbidden
	}

	if in.Text != nil {
		review.Text = *in.Text
	}
	if in.Score != nil {
		if *in.Score < 1 || *in.Score > 10 {
			return nil, apierrors.ErrScoreInvalid
		}
		review.Score = *in.Score
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.RatingKey(titleID))
	decorateReview(review)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *model.User, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !auth.CanModifyContent(actor, review.AuthorID) {
		return apierrors.ErrForbidden
	}
	if err := s.reviewRepo.Delete(ctx, review); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	_ = s.cache.Delete(ctx, cache.RatingKey(titleID))
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID uint) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrTitleNotFound
		}
		return fmt.Errorf("lookup title: %w", err)
	}
	return nil
}

func decorateReview(review *model.Review) {
	if review.Author != nil {
		review.AuthorUsername = review.Author.Username
	}
}
