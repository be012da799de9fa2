package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/property-management-api/internal/constants"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidUserType      = errors.New("user type must be owner or tenant")
	ErrMissingFields        = errors.New("required fields are missing")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles account related business logic.
type AuthService struct {
	base
}

// NewAuthService creates a new AuthService.
func NewAuthService(store *repository.Store, log *zap.Logger, events EventRecorder) *AuthService {
	return &AuthService{base: newBase(store, log, events)}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	UserType models.UserType
}

// Signup creates a new account with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (user *models.User, err error) {
	defer func() { s.record("signup", err) }()

	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" || input.UserType == "" {
		return nil, ErrMissingFields
	}
	if !input.UserType.Valid() {
		return nil, ErrInvalidUserType
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user = &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		UserType:     input.UserType,
	}

	// The existence check and insert share the write lock so two signups
	// for the same email cannot both pass the check.
	err = s.store.Atomic(ctx, func(r *repository.Repositories) error {
		if _, err := r.Users.FindByEmail(email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if err := r.Users.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.Uint64("user_id", user.ID), zap.String("user_type", string(user.UserType)))
	return user, nil
}

// SigninInput holds the credentials for authentication.
type SigninInput struct {
	Email    string
	Password string
}

// Signin verifies credentials and returns the authenticated user.
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (*models.User, error) {
	user, err := s.store.Repos(ctx).Users.FindByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.record("signin", ErrInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.record("signin", ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	s.record("signin", nil)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.store.Repos(ctx).Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput carries optional profile changes. Nil fields are left
// untouched; an empty name is ignored.
type UpdateProfileInput struct {
	Email string
	Name  *string
	Phone *string
}

// UpdateProfile changes name and phone of the account identified by email.
func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.User, error) {
	var user *models.User
	err := s.store.Atomic(ctx, func(r *repository.Repositories) error {
		found, err := r.Users.FindByEmail(strings.TrimSpace(input.Email))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
			found.Name = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			found.Phone = *input.Phone
		}
		found.UpdatedAt = s.now()

		if err := r.Users.Update(found); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
