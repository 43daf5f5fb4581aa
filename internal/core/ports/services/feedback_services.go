package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// FeedbackReaderSvc defines read operations for feedback data.
type FeedbackReaderSvc interface {
	// ListClientFeedback retrieves a client's feedback. Non-managers only
	// see approved submissions.
	ListClientFeedback(ctx context.Context, clientID string, actor domain.Actor) ([]domain.Feedback, error)

	// ListFeedback retrieves a page of the moderation queue with the total
	// count. Manager only.
	ListFeedback(ctx context.Context, params dto.ListFeedbackParams, actor domain.Actor) ([]domain.Feedback, int, error)

	// GetFeedbackStats computes the global feedback aggregates. Manager only.
	GetFeedbackStats(ctx context.Context, actor domain.Actor) (*dto.FeedbackStatsResponse, error)
}

// FeedbackWriterSvc defines write operations for feedback data.
type FeedbackWriterSvc interface {
	// SubmitFeedback records a public (unauthenticated) feedback submission
	// for a won client. The submission starts out pending moderation.
	SubmitFeedback(ctx context.Context, req dto.SubmitFeedbackRequest) (*domain.Feedback, error)

	// ModerateFeedback approves or rejects a pending submission and
	// recomputes the client's approved-rating aggregates. Manager only.
	ModerateFeedback(ctx context.Context, feedbackID string, status domain.FeedbackStatus, actor domain.Actor) (*domain.Feedback, error)
}

// FeedbackSvcFacade combines all feedback-related service interfaces.
type FeedbackSvcFacade interface {
	FeedbackReaderSvc
	FeedbackWriterSvc
}
