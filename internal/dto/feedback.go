package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// SubmitFeedbackRequest is the public feedback submission payload.
type SubmitFeedbackRequest struct {
	ClientID       string `json:"clientId" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment" binding:"max=500"`
	ServiceQuality int    `json:"serviceQuality" binding:"omitempty,min=1,max=5"`
	Communication  int    `json:"communication" binding:"omitempty,min=1,max=5"`
	WouldRecommend bool   `json:"wouldRecommend"`
	SubmittedBy    string `json:"submittedBy" binding:"required"`
	IsAnonymous    bool   `json:"isAnonymous"`
}

// UpdateFeedbackStatusRequest moderates a feedback submission.
type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListFeedbackParams are the query filters for the moderation list.
type ListFeedbackParams struct {
	PageParams
	Status string `form:"status"`
}

// FeedbackResponse is the response shape of a feedback submission.
type FeedbackResponse struct {
	FeedbackID     string    `json:"feedbackID"`
	ClientID       string    `json:"clientID"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	ServiceQuality int       `json:"serviceQuality"`
	Communication  int       `json:"communication"`
	WouldRecommend bool      `json:"wouldRecommend"`
	SubmittedBy    string    `json:"submittedBy"`
	IsAnonymous    bool      `json:"isAnonymous"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToFeedbackResponse converts a domain Feedback to its response shape. An
// anonymous submission hides the submitter.
func ToFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	submittedBy := f.SubmittedBy
	if f.IsAnonymous {
		submittedBy = "Anonymous"
	}
	return FeedbackResponse{
		FeedbackID:     f.FeedbackID,
		ClientID:       f.ClientID,
		Rating:         f.Rating,
		Comment:        f.Comment,
		ServiceQuality: f.ServiceQuality,
		Communication:  f.Communication,
		WouldRecommend: f.WouldRecommend,
		SubmittedBy:    submittedBy,
		IsAnonymous:    f.IsAnonymous,
		Status:         string(f.Status),
		CreatedAt:      f.CreatedAt,
	}
}

// ToFeedbackResponses converts a slice of domain Feedback.
func ToFeedbackResponses(items []domain.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, len(items))
	for i := range items {
		out[i] = ToFeedbackResponse(&items[i])
	}
	return out
}

// FeedbackStatsResponse summarises feedback across all clients.
type FeedbackStatsResponse struct {
	TotalFeedback         int         `json:"totalFeedback"`
	AverageRating         float64     `json:"averageRating"`
	AverageServiceQuality float64     `json:"averageServiceQuality"`
	AverageCommunication  float64     `json:"averageCommunication"`
	RecommendationRate    int         `json:"recommendationRate"`
	RatingDistribution    map[int]int `json:"ratingDistribution"`
}
