package services

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/google/uuid"
)

const defaultFeedbackPageSize = 20

type feedbackService struct {
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
	clientAuth   portssvc.ClientAuthorizerSvc
}

// NewFeedbackService creates the feedback collection and moderation service.
func NewFeedbackService(feedbackRepo portsrepo.FeedbackRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, clientAuth portssvc.ClientAuthorizerSvc) portssvc.FeedbackSvcFacade {
	return &feedbackService{feedbackRepo: feedbackRepo, clientRepo: clientRepo, clientAuth: clientAuth}
}

// SubmitFeedback records a public submission. Only won clients accept
// feedback, and every submission starts out pending moderation.
func (s *feedbackService) SubmitFeedback(ctx context.Context, req dto.SubmitFeedbackRequest) (*domain.Feedback, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client.Status != domain.ClientWon {
		return nil, apperrors.NewAppError(400, "feedback can only be submitted for won clients", apperrors.ErrInvalidState)
	}

	now := time.Now()
	feedback := domain.Feedback{
		FeedbackID:     uuid.NewString(),
		ClientID:       req.ClientID,
		Rating:         req.Rating,
		Comment:        req.Comment,
		ServiceQuality: req.ServiceQuality,
		Communication:  req.Communication,
		WouldRecommend: req.WouldRecommend,
		SubmittedBy:    req.SubmittedBy,
		IsAnonymous:    req.IsAnonymous,
		Status:         domain.FeedbackPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.SubmittedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: req.SubmittedBy,
		},
	}

	if err := s.feedbackRepo.SaveFeedback(ctx, feedback); err != nil {
		logger.Error("Failed to save feedback", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return nil, err
	}

	logger.Info("Feedback submitted", slog.String("feedback_id", feedback.FeedbackID), slog.String("client_id", req.ClientID))
	return &feedback, nil
}

func (s *feedbackService) ListClientFeedback(ctx context.Context, clientID string, actor domain.Actor) ([]domain.Feedback, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.clientAuth.AuthorizeClientAccess(ctx, clientID, actor); err != nil {
		return nil, err
	}

	items, err := s.feedbackRepo.ListFeedbackByClient(ctx, clientID)
	if err != nil {
		logger.Error("Failed to list client feedback", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}

	if !actor.IsManager() {
		approved := make([]domain.Feedback, 0, len(items))
		for _, f := range items {
			if f.Status == domain.FeedbackApproved {
				approved = append(approved, f)
			}
		}
		return approved, nil
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return items, nil
}

func (s *feedbackService) ListFeedback(ctx context.Context, params dto.ListFeedbackParams, actor domain.Actor) ([]domain.Feedback, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, 0, apperrors.ErrForbidden
	}

	params.Normalize(defaultFeedbackPageSize)
	filter := portsrepo.FeedbackListFilter{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Status != "" {
		status := domain.FeedbackStatus(params.Status)
		if !domain.ValidFeedbackStatus(status) {
			return nil, 0, apperrors.NewAppError(400, "invalid feedback status filter", apperrors.ErrValidation)
		}
		filter.Status = &status
	}

	items, total, err := s.feedbackRepo.ListFeedback(ctx, filter)
	if err != nil {
		logger.Error("Failed to list feedback", slog.String("error", err.Error()))
		return nil, 0, err
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return items, total, nil
}

// ModerateFeedback approves or rejects a submission and refreshes the
// client's denormalized approved-rating aggregates.
func (s *feedbackService) ModerateFeedback(ctx context.Context, feedbackID string, status domain.FeedbackStatus, actor domain.Actor) (*domain.Feedback, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}
	if status != domain.FeedbackApproved && status != domain.FeedbackRejected {
		return nil, apperrors.NewAppError(400, "moderation status must be approved or rejected", apperrors.ErrValidation)
	}

	feedback, err := s.feedbackRepo.FindFeedbackByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.feedbackRepo.UpdateFeedbackStatus(ctx, feedbackID, status, actor.UserID); err != nil {
		logger.Error("Failed to update feedback status", slog.String("error", err.Error()), slog.String("feedback_id", feedbackID))
		return nil, err
	}
	feedback.Status = status
	feedback.LastUpdatedAt = now
	feedback.LastUpdatedBy = actor.UserID

	// Re-moderation changes the approved set either way, so always recompute.
	average, count, err := s.feedbackRepo.GetApprovedRating(ctx, feedback.ClientID)
	if err != nil {
		logger.Error("Failed to recompute approved rating", slog.String("error", err.Error()), slog.String("client_id", feedback.ClientID))
		return nil, err
	}
	average = math.Round(average*10) / 10
	if err := s.clientRepo.UpdateFeedbackAggregates(ctx, feedback.ClientID, average, count, now); err != nil {
		logger.Error("Failed to store feedback aggregates", slog.String("error", err.Error()), slog.String("client_id", feedback.ClientID))
		return nil, err
	}

	logger.Info("Feedback moderated",
		slog.String("feedback_id", feedbackID),
		slog.String("status", string(status)),
		slog.Float64("client_average", average),
	)
	return feedback, nil
}

func (s *feedbackService) GetFeedbackStats(ctx context.Context, actor domain.Actor) (*dto.FeedbackStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	stats, err := s.feedbackRepo.GetFeedbackStats(ctx)
	if err != nil {
		logger.Error("Failed to compute feedback stats", slog.String("error", err.Error()))
		return nil, err
	}

	recommendationRate := 0
	if stats.TotalFeedback > 0 {
		recommendationRate = stats.WouldRecommendCount * 100 / stats.TotalFeedback
	}
	distribution := stats.RatingDistribution
	if distribution == nil {
		distribution = map[int]int{}
	}

	return &dto.FeedbackStatsResponse{
		TotalFeedback:         stats.TotalFeedback,
		AverageRating:         math.Round(stats.AverageRating*10) / 10,
		AverageServiceQuality: math.Round(stats.AverageServiceQuality*10) / 10,
		AverageCommunication:  math.Round(stats.AverageCommunication*10) / 10,
		RecommendationRate:    recommendationRate,
		RatingDistribution:    distribution,
	}, nil
}

var _ portssvc.FeedbackSvcFacade = (*feedbackService)(nil)
