package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/sweetshop/pkg/auth"
	userdomain "github.com/ghuser/sweetshop/services/user/domain"
	"github.com/ghuser/sweetshop/services/user/domain/models"
	"github.com/ghuser/sweetshop/services/user/domain/repositories"
)

// UserService handles registration and credential verification.
type UserService struct {
	repo   repositories.UserRepository
	tokens *auth.TokenIssuer
}

// NewUserService returns a UserService wired with the given repository and token issuer.
func NewUserService(repo repositories.UserRepository, tokens *auth.TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register hashes the password and persists a new User.
// Returns ErrUsernameTaken when the username or email is already in use.
func (s *UserService) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(username, email, role, string(hash))
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the user plus a signed access
// token. Unknown usernames and wrong passwords both yield
// ErrInvalidCredentials so the response does not leak which part failed.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, "", userdomain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", userdomain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
