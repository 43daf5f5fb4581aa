package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListEmployees retrieves the active employee accounts, for the
	// assignment pickers.
	ListEmployees(ctx context.Context, actor domain.Actor) ([]domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
}
