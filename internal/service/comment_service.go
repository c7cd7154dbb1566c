package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/auth"
	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

// CommentService handles comments nested under a review, which is in
// turn nested under a title.
type CommentService interface {
	ListByReview(ctx context.Context, titleID, reviewID uint, limit, offset int) ([]model.Comment, error)
	Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error)
	Create(ctx context.Context, titleID, reviewID uint, author *model.User, text string) (*model.Comment, error)
	Update(ctx context.Context, actor *model.User, titleID, reviewID, commentID uint, text string) (*model.Comment, error)
	Delete(ctx context.Context, actor *model.User, titleID, reviewID, commentID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *commentService) ListByReview(ctx context.Context, titleID, reviewID uint, limit, offset int) ([]model.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByReview(ctx, reviewID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for i := range comments {
		decorateComment(&comments[i])
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*model.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("lookup comment: %w", err)
	}
	decorateComment(comment)
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, titleID, reviewID uint, author *model.User, text string) (*model.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = author
	decorateComment(comment)
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *model.User, titleID, reviewID, commentID uint, text string) (*model.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModifyContent(actor, comment.AuthorID) {
		return nil, apierrors.ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	decorateComment(comment)
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *model.User, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !auth.CanModifyContent(actor, comment.AuthorID) {
		return apierrors.ErrForbidden
	}
	return s.commentRepo.Delete(ctx, comment)
}

// requireReview resolves the review through its title nesting so a
// comment cannot be reached via the wrong title.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID uint) error {
	if _, err := s.reviewRepo.FindByID(ctx, titleID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrReviewNotFound
		}
		return fmt.Errorf("lookup review: %w", err)
	}
	return nil
}

func decorateComment(comment *model.Comment) {
	if comment.Author != nil {
		comment.AuthorUsername = comment.Author.Username
	}
}
