package repositories

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by its (lowercased) email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListActiveEmployees retrieves all active users with the employee role,
	// ordered by name.
	ListActiveEmployees(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
