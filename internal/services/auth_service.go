package services

import (
	"fmt"

	"heirloom/internal/models"
	"heirloom/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// RegisterOutcome is the typed result of a registration attempt. The HTTP
// layer stays silent about conflicts, but tests and logs can still tell a
// duplicate username apart from a successful registration.
type RegisterOutcome int

const (
	RegisterCreated RegisterOutcome = iota
	RegisterConflict
)

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterUser hashes the password and stores a new user. Duplicate
// usernames are caught by an explicit pre-check; the store's unique index
// remains the backstop for a race between the check and the insert.
// The outcome is only meaningful when the returned error is nil.
func (s *AuthService) RegisterUser(username, password string) (RegisterOutcome, error) {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return RegisterConflict, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterConflict, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword), // Store the hash, never the plaintext
	}
	if err := s.userRepo.Create(user); err != nil {
		return RegisterConflict, fmt.Errorf("failed to register user: %w", err)
	}
	return RegisterCreated, nil
}

// LoginUser verifies credentials and returns the matching user. The error
// never reveals whether the username or the password was wrong.
func (s *AuthService) LoginUser(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil || user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	return user, nil
}
