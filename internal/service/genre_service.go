package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

// GenreService handles the genre part of the catalog.
type GenreService interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.Genre, error)
	Create(ctx context.Context, name, slug string) (*model.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

// NewGenreService creates a new genre service.
func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context, search string, limit, offset int) ([]model.Genre, error) {
	return s.genreRepo.List(ctx, search, limit, offset)
}

func (s *genreService) Create(ctx context.Context, name, slug string) (*model.Genre, error) {
	if !slugRe.MatchString(slug) {
		return nil, apierrors.ErrSlugInvalid
	}
	genre := &model.Genre{Name: name, Slug: slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrSlugExists
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return genre, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	genre, err := s.genreRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.ErrGenreNotFound
		}
		return fmt.Errorf("lookup genre: %w", err)
	}
	return s.genreRepo.Delete(ctx, genre)
}
