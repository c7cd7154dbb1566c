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

// UserInput carries directory create/update fields. Nil pointers mean
// "leave unchanged" on partial updates.
type UserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// UserService handles the admin user directory and the /me profile.
type UserService interface {
	List(ctx context.Context, search string, limit, offset int) ([]model.User, error)
	Create(ctx context.Context, in UserInput) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateByUsername(ctx context.Context, username string, in UserInput) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) error
	UpdateProfile(ctx context.Context, user *model.User, in UserInput) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user directory service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, limit, offset int) ([]model.User, error) {
	return s.userRepo.List(ctx, search, limit, offset)
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	if in.Username == nil || in.Email == nil {
		return nil, apierrors.ErrUsernameInvalid
	}
	if err := ValidateUsername(*in.Username); err != nil {
		return nil, err
	}

	user := &model.User{
		Username: *in.Username,
		Email:    *in.Email,
		Role:     model.RoleUser,
	}
	if err := applyUserInput(user, in, true); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateByUsername(ctx context.Context, username string, in UserInput) (*model.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := applyUserInput(user, in, true); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user)
}

// UpdateProfile is the /me self-service update. The role field is
// read-only here; escalation goes through the admin directory.
func (s *userService) UpdateProfile(ctx context.Context, user *model.User, in UserInput) (*model.User, error) {
	if err := applyUserInput(user, in, false); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.ErrUserExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func applyUserInput(user *model.User, in UserInput, allowRole bool) error {
	if in.Username != nil {
		if err := ValidateUsername(*in.Username); err != nil {
			return err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Role != nil && allowRole {
		role, ok := model.ParseRole(*in.Role)
		if !ok {
			return apierrors.ErrBadRole
		}
		user.Role = role
	}
	return nil
}
