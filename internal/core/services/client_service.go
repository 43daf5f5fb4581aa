package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type clientService struct {
	clientRepo portsrepo.ClientRepositoryFacade
	userRepo   portsrepo.UserReader
}

// NewClientService creates the client/lead service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, userRepo portsrepo.UserReader) portssvc.ClientSvcFacade {
	return &clientService{clientRepo: clientRepo, userRepo: userRepo}
}

// AuthorizeClientAccess loads the client and applies the shared visibility
// rule: managers act on any client, employees only on their assigned ones.
func (s *clientService) AuthorizeClientAccess(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && client.AssignedTo != actor.UserID {
		middleware.GetLoggerFromCtx(ctx).Warn("Client access denied", slog.String("client_id", clientID))
		return nil, apperrors.ErrForbidden
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error) {
	return s.AuthorizeClientAccess(ctx, clientID, actor)
}

func (s *clientService) ListClients(ctx context.Context, params dto.ListClientsParams, actor domain.Actor) ([]domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ClientListFilter{}
	if params.Status != "" {
		status := domain.ClientStatus(params.Status)
		if !domain.ValidClientStatus(status) {
			return nil, apperrors.NewAppError(400, "invalid client status filter", apperrors.ErrValidation)
		}
		filter.Status = &status
	}
	if actor.IsManager() {
		if params.AssignedTo != "" {
			assignedTo := params.AssignedTo
			filter.AssignedTo = &assignedTo
		}
	} else {
		// Employees only ever see their own clients, whatever they ask for.
		assignedTo := actor.UserID
		filter.AssignedTo = &assignedTo
	}

	clients, err := s.clientRepo.ListClients(ctx, filter)
	if err != nil {
		logger.Error("Failed to list clients", slog.String("error", err.Error()))
		return nil, err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, actor domain.Actor) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignedTo := actor.UserID
	if actor.IsManager() && req.AssignedTo != "" {
		if _, err := s.userRepo.FindUserByID(ctx, req.AssignedTo); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(400, "assignee does not exist", apperrors.ErrValidation)
			}
			return nil, err
		}
		assignedTo = req.AssignedTo
	}

	estimatedValue := decimal.Zero
	if req.EstimatedValue != nil {
		if req.EstimatedValue.IsNegative() {
			return nil, apperrors.NewAppError(400, "estimated value must not be negative", apperrors.ErrValidation)
		}
		estimatedValue = *req.EstimatedValue
	}

	now := time.Now()
	client := domain.Client{
		ClientID:        uuid.NewString(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Status:          domain.ClientNew,
		AssignedTo:      assignedTo,
		Notes:           req.Notes,
		EstimatedValue:  estimatedValue,
		LastContactDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor domain.Actor) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		// Reassignment stays manager-only even through the generic update.
		if !actor.IsManager() {
			return nil, apperrors.ErrForbidden
		}
		if _, err := s.userRepo.FindUserByID(ctx, *req.AssignedTo); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(400, "assignee does not exist", apperrors.ErrValidation)
			}
			return nil, err
		}
		client.AssignedTo = *req.AssignedTo
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		client.Company = *req.Company
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.EstimatedValue != nil {
		if req.EstimatedValue.IsNegative() {
			return nil, apperrors.NewAppError(400, "estimated value must not be negative", apperrors.ErrValidation)
		}
		client.EstimatedValue = *req.EstimatedValue
	}

	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus, actor domain.Actor) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidClientStatus(status) {
		return nil, apperrors.NewAppError(400, "invalid client status", apperrors.ErrValidation)
	}

	client, err := s.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}

	client.Status = status
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client status", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Client status updated", slog.String("client_id", clientID), slog.String("status", string(status)))
	return client, nil
}

func (s *clientService) AssignClient(ctx context.Context, clientID string, assignedTo string, actor domain.Actor) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, assignedTo); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(400, "assignee does not exist", apperrors.ErrValidation)
		}
		return nil, err
	}

	client.AssignedTo = assignedTo
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to reassign client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Client reassigned", slog.String("client_id", clientID), slog.String("assigned_to", assignedTo))
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return apperrors.ErrForbidden
	}
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		return err
	}

	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		logger.Error("Failed to delete client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return err
	}

	logger.Info("Client deleted", slog.String("client_id", clientID))
	return nil
}

// RequestFeedback flags a won client as awaiting a feedback submission.
func (s *clientService) RequestFeedback(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}
	if client.Status != domain.ClientWon {
		return nil, apperrors.NewAppError(400, "feedback can only be requested for won clients", apperrors.ErrInvalidState)
	}

	now := time.Now()
	client.FeedbackRequested = true
	client.FeedbackRequestedAt = &now
	client.LastUpdatedAt = now
	client.LastUpdatedBy = actor.UserID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to flag feedback request", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Feedback requested", slog.String("client_id", clientID))
	return client, nil
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)
