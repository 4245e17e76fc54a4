// Package service contains the application's business logic.
package service

import (
	"context"
	"strings"

	"linguaspace/internal/models"
	"linguaspace/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration and authentication over the user store.
// Plaintext passwords only ever live on the stack here; they are never
// persisted or logged.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every email comparison in the app goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. Duplicate emails are rejected by the
// store's unique constraint rather than a check-then-act lookup, so
// concurrent registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching the credentials. Callers must
// surface NOT_FOUND and INVALID_CREDENTIALS identically to the client; the
// codes stay distinct internally for logs and tests.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "Invalid email or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}

// ListUsers returns all registered users for the admin dashboard.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}
