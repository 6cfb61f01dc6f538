package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/services/user/domain/models"
)

// UserRepository is the persistence interface for the User aggregate.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Save persists a new User. Returns ErrUsernameTaken when the username
	// (or email) collides with an existing account.
	Save(ctx context.Context, user *models.User) error

	// GetByID retrieves a User by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a User by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
