package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		slug          string
		setupMock     func(*MockCategoryRepository)
		expectedError error
	}{
		{
			name:          "slug with forbidden characters",
			slug:          "no/slashes",
			setupMock:     func(m *MockCategoryRepository) {},
			expectedError: apierrors.ErrSlugInvalid,
		},
		{
			name: "duplicate slug",
			slug: "films",
			setupMock: func(m *MockCategoryRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).
					Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apierrors.ErrSlugExists,
		},
		{
			name: "successful create",
			slug: "films",
			setupMock: func(m *MockCategoryRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCategoryRepository)
			tt.setupMock(mockRepo)

			service := NewCategoryService(mockRepo)
			category, err := service.Create(context.Background(), "Films", tt.slug)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, category)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "films", category.Slug)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_DeleteBySlug(t *testing.T) {
	t.Run("unknown slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "ghosts").
			Return(nil, gorm.ErrRecordNotFound)

		service := NewCategoryService(mockRepo)
		err := service.DeleteBySlug(context.Background(), "ghosts")

		assert.Equal(t, apierrors.ErrCategoryNotFound, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindBySlug", mock.Anything, "films").
			Return(&model.Category{ID: 1, Name: "Films", Slug: "films"}, nil)
		mockRepo.On("Delete", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		service := NewCategoryService(mockRepo)
		err := service.DeleteBySlug(context.Background(), "films")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}
