package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// AuthSvc defines registration and credential authentication.
type AuthSvc interface {
	// Register creates a new user account with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email and password and returns the user.
	// Returns apperrors.ErrUnauthorized on a credential mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// AuthSvcFacade combines all authentication service interfaces.
type AuthSvcFacade interface {
	AuthSvc
}
