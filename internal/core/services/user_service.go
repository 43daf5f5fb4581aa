package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/middleware"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user read service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find user by ID", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ListEmployees backs the manager-side assignment pickers.
func (s *userService) ListEmployees(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}
	users, err := s.userRepo.ListActiveEmployees(ctx)
	if err != nil {
		logger.Error("Failed to list employees", slog.String("error", err.Error()))
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

var _ portssvc.UserSvcFacade = (*userService)(nil)
