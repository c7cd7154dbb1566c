package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/model"
)

// MockCategoryService is a mock implementation of service.CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context, search string, limit, offset int) ([]model.Category, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func TestCategoryHandler_List(t *testing.T) {
	mockService := new(MockCategoryService)
	mockService.On("List", mock.Anything, "fi", 2, 0).Return([]model.Category{
		{Name: "Films", Slug: "films"},
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?search=fi&limit=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewCategoryHandler(mockService)
	assert.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"films"`)
	mockService.AssertExpectations(t)
}

func TestCategoryHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockCategoryService)
		expectedStatus int
	}{
		{
			name: "valid category",
			body: `{"name":"Films","slug":"films"}`,
			setupMock: func(m *MockCategoryService) {
				m.On("Create", mock.Anything, "Films", "films").
					Return(&model.Category{Name: "Films", Slug: "films"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing slug fails validation",
			body:           `{"name":"Films"}`,
			setupMock:      func(m *MockCategoryService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate slug maps to 409",
			body: `{"name":"Films","slug":"films"}`,
			setupMock: func(m *MockCategoryService) {
				m.On("Create", mock.Anything, "Films", "films").
					Return(nil, apierrors.ErrSlugExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "bad slug maps to 400",
			body: `{"name":"Films","slug":"no/slashes"}`,
			setupMock: func(m *MockCategoryService) {
				m.On("Create", mock.Anything, "Films", "no/slashes").
					Return(nil, apierrors.ErrSlugInvalid)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCategoryService)
			tt.setupMock(mockService)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewCategoryHandler(mockService)
			err := h.Create(c)

			if err != nil {
				he, ok := err.(*echo.HTTPError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedStatus, he.Code)
			} else {
				assert.Equal(t, tt.expectedStatus, rec.Code)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("existing slug", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("DeleteBySlug", mock.Anything, "films").Return(nil)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/films", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues("films")

		h := NewCategoryHandler(mockService)
		assert.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("unknown slug maps to 404", func(t *testing.T) {
		mockService := new(MockCategoryService)
		mockService.On("DeleteBySlug", mock.Anything, "ghosts").
			Return(apierrors.ErrCategoryNotFound)

		e := newTestEcho()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/ghosts", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("slug")
		c.SetParamValues("ghosts")

		h := NewCategoryHandler(mockService)
		assert.NoError(t, h.Delete(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}
