package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/password"
)

// ImageSource yields the avatar of a registration as base64 text.
// *upload.File satisfies it.
type ImageSource interface {
	EncodeBase64() (string, error)
}

// Registration is the input of RegisterUser. Image is nil when the client
// sent no file.
type Registration struct {
	Email    string
	Password string
	Image    ImageSource
}

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
	log      logrus.FieldLogger
	validate *validator.Validate
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		events:   events,
		log:      log,
		validate: newValidator(),
	}
}

// RegisterUser validates and stores a new user. Checks run in a fixed order:
// image presence (ErrImageRequired), field rules (*ValidationError), then
// email uniqueness (ErrEmailTaken). Only then is the image encoded and the
// password hashed.
func (s *AuthService) RegisterUser(ctx context.Context, reg Registration) (*models.User, error) {
	if reg.Image == nil {
		return nil, ErrImageRequired
	}
	if err := validateUser(s.validate, reg.Email, reg.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, reg.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	image, err := reg.Image.EncodeBase64()
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	if image == "" {
		return nil, ErrImageRequired
	}
	hashed, err := password.Hash(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    reg.Email,
		Password: hashed,
		Image:    image,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	publish(s.events, s.log, EventUserRegistered, UserRegisteredEvent{
		UserID:       user.ID,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	})
	return user, nil
}

// LoginUser verifies email and password. It returns ErrInvalidCredentials
// when the user does not exist or the password is wrong, and a wrapped error
// for any store fault.
func (s *AuthService) LoginUser(ctx context.Context, email, plain string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := password.Compare(user.Password, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password for %s: %w", email, err)
	}
	return nil
}
