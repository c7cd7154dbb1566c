package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CategoryService handles the category part of the catalog.
type CategoryService interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.Category, error)
	Create(ctx context.Context, name, slug string) (*model.Category, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, search string, limit, offset int) ([]model.Category, error) {
	return s.categoryRepo.List(ctx, search, limit, offset)
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	if !slugRe.MatchString(slug) {
		return nil, apierrors.ErrSlugInvalid
	}
	category := &model.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrSlugExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// DeleteBySlug removes the category; titles referencing it keep
// existing with a NULL category.
func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrCategoryNotFound
		}
		return fmt.Errorf("lookup category: %w", err)
	}
	return s.categoryRepo.Delete(ctx, category)
}
