package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/owlproh/api-yamdb/internal/auth"
	apierrors "github.com/owlproh/api-yamdb/internal/errors"
	"github.com/owlproh/api-yamdb/internal/logger"
	"github.com/owlproh/api-yamdb/internal/mailer"
	"github.com/owlproh/api-yamdb/internal/model"
	"github.com/owlproh/api-yamdb/internal/repository"
)

const reservedUsername = "me"

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthService handles signup and confirmation-code token exchange.
type AuthService interface {
	Signup(ctx context.Context, email, username string) error
	ExchangeToken(ctx context.Context, username, confirmationCode string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	mailer     mailer.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, m mailer.Mailer) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     m,
	}
}

// Signup gets-or-creates the account keyed by (email, username), issues
// a fresh confirmation code and dispatches it by mail. A repeat signup
// for the same pair rotates the code.
func (s *authService) Signup(ctx context.Context, email, username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}

	user, err := s.resolveUser(ctx, email, username)
	if err != nil {
		return err
	}

	code := auth.NewConfirmationCode()
	hash, err := auth.HashConfirmationCode(code)
	if err != nil {
		return fmt.Errorf("hash confirmation code: %w", err)
	}
	now := time.Now()
	user.ConfirmationHash = &hash
	user.CodeIssuedAt = &now

	if user.ID == 0 {
		err = s.userRepo.Create(ctx, user)
	} else {
		err = s.userRepo.Save(ctx, user)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierrors.ErrUserExists
		}
		return fmt.Errorf("store signup: %w", err)
	}

	// Fire-and-forget: delivery failure must not fail the signup.
	go func(email, code string) {
		if err := s.mailer.SendConfirmationCode(context.Background(), email, code); err != nil {
			logger.Log.Errorw("confirmation mail failed", "email", email, "error", err)
		}
	}(user.Email, code)

	return nil
}

// resolveUser finds the account matching both email and username, or a
// brand-new one when neither is taken. A partial collision is rejected.
func (s *authService) resolveUser(ctx context.Context, email, username string) (*model.User, error) {
	byUsername, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	byEmail, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	switch {
	case byUsername != nil && byUsername.Email != email:
		return nil, apierrors.ErrUsernameTaken
	case byEmail != nil && byEmail.Username != username:
		return nil, apierrors.ErrEmailTaken
	case byUsername != nil:
		return byUsername, nil
	default:
		return &model.User{
			Username: username,
			Email:    email,
			Role:     model.RoleUser,
		}, nil
	}
}

// ExchangeToken swaps a valid confirmation code for a signed access
// token. Codes are single-use: the stored hash is cleared on success.
func (s *authService) ExchangeToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierrors.ErrUserNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if user.ConfirmationHash == nil || user.CodeIssuedAt == nil ||
		!auth.CheckConfirmationCode(*user.ConfirmationHash, *user.CodeIssuedAt, confirmationCode) {
		return "", apierrors.ErrBadConfirmationCode
	}

	user.ConfirmationHash = nil
	user.CodeIssuedAt = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", fmt.Errorf("invalidate confirmation code: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

// ValidateUsername applies the reserved-name and character-set rules.
func ValidateUsername(username string) error {
	if username == reservedUsername {
		return apierrors.ErrUsernameReserved
	}
	if !usernameRe.MatchString(username) {
		return apierrors.ErrUsernameInvalid
	}
	return nil
}
