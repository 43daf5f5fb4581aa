package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/google/uuid"
)

const defaultActivityPageSize = 20

type activityService struct {
	activityRepo portsrepo.ActivityRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
	clientAuth   portssvc.ClientAuthorizerSvc
}

// NewActivityService creates the activity logging service.
func NewActivityService(activityRepo portsrepo.ActivityRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, clientAuth portssvc.ClientAuthorizerSvc) portssvc.ActivitySvcFacade {
	return &activityService{
		activityRepo: activityRepo,
		clientRepo:   clientRepo,
		clientAuth:   clientAuth,
	}
}

func (s *activityService) LogActivity(ctx context.Context, clientID string, req dto.CreateActivityRequest, actor domain.Actor) (*domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor)
	if err != nil {
		return nil, err
	}

	activityType := domain.ActivityType(req.Type)
	if !domain.ValidActivityType(activityType) {
		return nil, apperrors.NewAppError(400, "invalid activity type", apperrors.ErrValidation)
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.ActivityPriority(req.Priority)
		if priority != domain.PriorityLow && priority != domain.PriorityMedium && priority != domain.PriorityHigh {
			return nil, apperrors.NewAppError(400, "invalid activity priority", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	date := now
	if req.Date != "" {
		date, err = utils.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid activity date", apperrors.ErrValidation)
		}
	}

	activity := domain.Activity{
		ActivityID:  uuid.NewString(),
		ClientID:    clientID,
		Type:        activityType,
		Description: req.Description,
		Date:        date,
		Done:        false,
		Priority:    priority,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		logger.Error("Failed to save activity", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	// Logging contact refreshes the client's last contact date.
	client.LastContactDate = now
	client.LastUpdatedAt = now
	client.LastUpdatedBy = actor.UserID
	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to refresh client last contact date", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	logger.Info("Activity logged", slog.String("activity_id", activity.ActivityID), slog.String("type", string(activityType)))
	return &activity, nil
}

func (s *activityService) ListClientActivities(ctx context.Context, clientID string, params dto.ListActivitiesParams, actor domain.Actor) ([]domain.Activity, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor); err != nil {
		return nil, 0, err
	}

	params.Normalize(defaultActivityPageSize)
	filter := portsrepo.ActivityListFilter{
		ClientID: &clientID,
		Done:     params.Done,
		Limit:    params.Limit,
		Offset:   params.Offset(),
	}
	if params.Type != "" {
		activityType := domain.ActivityType(params.Type)
		if !domain.ValidActivityType(activityType) {
			return nil, 0, apperrors.NewAppError(400, "invalid activity type filter", apperrors.ErrValidation)
		}
		filter.Type = &activityType
	}

	activities, total, err := s.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		logger.Error("Failed to list client activities", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, 0, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, total, nil
}

func (s *activityService) ListRecentActivities(ctx context.Context, params dto.ListActivitiesParams, actor domain.Actor) ([]domain.Activity, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	params.Normalize(defaultActivityPageSize)
	filter := portsrepo.ActivityListFilter{
		Done:   params.Done,
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Type != "" {
		activityType := domain.ActivityType(params.Type)
		if !domain.ValidActivityType(activityType) {
			return nil, 0, apperrors.NewAppError(400, "invalid activity type filter", apperrors.ErrValidation)
		}
		filter.Type = &activityType
	}
	if !actor.IsManager() {
		clientIDs, err := s.clientRepo.ListClientIDsByAssignee(ctx, actor.UserID)
		if err != nil {
			logger.Error("Failed to scope activities to assignee", slog.String("error", err.Error()))
			return nil, 0, err
		}
		if len(clientIDs) == 0 {
			return []domain.Activity{}, 0, nil
		}
		filter.ClientIDs = clientIDs
	}

	activities, total, err := s.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		logger.Error("Failed to list recent activities", slog.String("error", err.Error()))
		return nil, 0, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, total, nil
}

func (s *activityService) UpdateActivity(ctx context.Context, activityID string, req dto.UpdateActivityRequest, actor domain.Actor) (*domain.Activity, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, activity.ClientID, actor); err != nil {
		return nil, err
	}

	if req.Type != nil {
		activityType := domain.ActivityType(*req.Type)
		if !domain.ValidActivityType(activityType) {
			return nil, apperrors.NewAppError(400, "invalid activity type", apperrors.ErrValidation)
		}
		activity.Type = activityType
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid activity date", apperrors.ErrValidation)
		}
		activity.Date = date
	}
	if req.Done != nil {
		activity.Done = *req.Done
	}
	if req.Priority != nil {
		priority := domain.ActivityPriority(*req.Priority)
		if priority != domain.PriorityLow && priority != domain.PriorityMedium && priority != domain.PriorityHigh {
			return nil, apperrors.NewAppError(400, "invalid activity priority", apperrors.ErrValidation)
		}
		activity.Priority = priority
	}

	activity.LastUpdatedAt = time.Now()
	activity.LastUpdatedBy = actor.UserID

	if err := s.activityRepo.UpdateActivity(ctx, *activity); err != nil {
		logger.Error("Failed to update activity", slog.String("error", err.Error()), slog.String("activity_id", activityID))
		return nil, err
	}
	return activity, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, activityID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		return err
	}
	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, activity.ClientID, actor); err != nil {
		return err
	}

	if err := s.activityRepo.DeleteActivity(ctx, activityID); err != nil {
		logger.Error("Failed to delete activity", slog.String("error", err.Error()), slog.String("activity_id", activityID))
		return err
	}

	logger.Info("Activity deleted", slog.String("activity_id", activityID))
	return nil
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)
