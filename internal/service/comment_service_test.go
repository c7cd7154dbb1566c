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

func TestCommentService_Create(t *testing.T) {
	author := &model.User{ID: 3, Username: "critic", Role: model.RoleUser}

	tests := []struct {
		name          string
		setupMock     func(*MockCommentRepository, *MockReviewRepository)
		expectedError error
	}{
		{
			name: "review does not exist under this title",
			setupMock: func(cr *MockCommentRepository, rr *MockReviewRepository) {
				rr.On("FindByID", mock.Anything, uint(10), uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apierrors.ErrReviewNotFound,
		},
		{
			name: "successful create",
			setupMock: func(cr *MockCommentRepository, rr *MockReviewRepository) {
				rr.On("FindByID", mock.Anything, uint(10), uint(1)).
					Return(&model.Review{ID: 1, TitleID: 10, AuthorID: 5}, nil)
				cr.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.Comment).ID = 7
					}).
					Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			reviewRepo := new(MockReviewRepository)
			tt.setupMock(commentRepo, reviewRepo)

			service := NewCommentService(commentRepo, reviewRepo)
			comment, err := service.Create(context.Background(), 10, 1, author, "agreed on every point")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, comment)
				assert.Equal(t, uint(1), comment.ReviewID)
				assert.Equal(t, "critic", comment.AuthorUsername)
			}

			commentRepo.AssertExpectations(t)
			reviewRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_Update_Permissions(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		expectSave    bool
		expectedError error
	}{
		{
			name:          "unrelated user is rejected",
			actor:         &model.User{ID: 99, Role: model.RoleUser},
			expectedError: apierrors.ErrForbidden,
		},
		{
			name:       "author may edit",
			actor:      &model.User{ID: 3, Username: "critic", Role: model.RoleUser},
			expectSave: true,
		},
		{
			name:       "moderator may edit",
			actor:      &model.User{ID: 50, Username: "mod", Role: model.RoleModerator},
			expectSave: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commentRepo := new(MockCommentRepository)
			reviewRepo := new(MockReviewRepository)
			reviewRepo.On("FindByID", mock.Anything, uint(10), uint(1)).
				Return(&model.Review{ID: 1, TitleID: 10, AuthorID: 5}, nil)
			commentRepo.On("FindByID", mock.Anything, uint(1), uint(7)).
				Return(&model.Comment{ID: 7, ReviewID: 1, AuthorID: 3, Text: "original"}, nil)
			if tt.expectSave {
				commentRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
			}

			service := NewCommentService(commentRepo, reviewRepo)
			comment, err := service.Update(context.Background(), tt.actor, 10, 1, 7, "amended")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, comment)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "amended", comment.Text)
			}
			commentRepo.AssertExpectations(t)
		})
	}
}

func TestCommentService_Get_WrongNesting(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	// The review exists, but not under the requested title.
	reviewRepo.On("FindByID", mock.Anything, uint(999), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)

	service := NewCommentService(commentRepo, reviewRepo)
	comment, err := service.Get(context.Background(), 999, 1, 7)

	assert.Nil(t, comment)
	assert.Equal(t, apierrors.ErrReviewNotFound, err)
}

func TestCommentService_ListByReview(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	reviewRepo := new(MockReviewRepository)
	reviewRepo.On("FindByID", mock.Anything, uint(10), uint(1)).
		Return(&model.Review{ID: 1, TitleID: 10, AuthorID: 5}, nil)
	commentRepo.On("ListByReview", mock.Anything, uint(1), 0, 0).Return([]model.Comment{
		{ID: 8, ReviewID: 1, AuthorID: 4, Author: &model.User{ID: 4, Username: "second"}},
		{ID: 7, ReviewID: 1, AuthorID: 3, Author: &model.User{ID: 3, Username: "first"}},
	}, nil)

	service := NewCommentService(commentRepo, reviewRepo)
	comments, err := service.ListByReview(context.Background(), 10, 1, 0, 0)

	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].AuthorUsername)
	assert.Equal(t, "first", comments[1].AuthorUsername)
}
