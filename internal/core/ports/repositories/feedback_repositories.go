package repositories

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// FeedbackListFilter is the filter-specification value object for the
// moderation list.
type FeedbackListFilter struct {
	Status *domain.FeedbackStatus
	Limit  int
	Offset int
}

// FeedbackGlobalStats is the aggregate result of GetFeedbackStats.
type FeedbackGlobalStats struct {
	TotalFeedback         int
	AverageRating         float64
	AverageServiceQuality float64
	AverageCommunication  float64
	WouldRecommendCount   int
	RatingDistribution    map[int]int
}

// FeedbackReader defines read operations for feedback data.
type FeedbackReader interface {
	// FindFeedbackByID retrieves a feedback submission by its identifier.
	FindFeedbackByID(ctx context.Context, feedbackID string) (*domain.Feedback, error)

	// ListFeedbackByClient retrieves all feedback for a client, newest first.
	ListFeedbackByClient(ctx context.Context, clientID string) ([]domain.Feedback, error)

	// ListFeedback retrieves a page of feedback matching the filter, newest
	// first, along with the total row count.
	ListFeedback(ctx context.Context, filter FeedbackListFilter) ([]domain.Feedback, int, error)

	// GetApprovedRating computes the average rating and count over the
	// client's approved feedback.
	GetApprovedRating(ctx context.Context, clientID string) (float64, int, error)

	// GetFeedbackStats computes the global feedback aggregates.
	GetFeedbackStats(ctx context.Context) (*FeedbackGlobalStats, error)
}

// FeedbackWriter defines write operations for feedback data.
type FeedbackWriter interface {
	// SaveFeedback persists a new feedback submission.
	SaveFeedback(ctx context.Context, feedback domain.Feedback) error

	// UpdateFeedbackStatus sets the moderation status of a submission.
	UpdateFeedbackStatus(ctx context.Context, feedbackID string, status domain.FeedbackStatus, updatedBy string) error
}

// FeedbackRepositoryFacade combines all feedback repository interfaces.
type FeedbackRepositoryFacade interface {
	FeedbackReader
	FeedbackWriter
}
