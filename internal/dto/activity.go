package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// CreateActivityRequest logs a new interaction against a client.
type CreateActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date"`
	Priority    string `json:"priority"`
}

// UpdateActivityRequest is the partial-update payload for an activity.
type UpdateActivityRequest struct {
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Done        *bool   `json:"done"`
	Priority    *string `json:"priority"`
}

// ListActivitiesParams are the query filters for activity listings.
type ListActivitiesParams struct {
	PageParams
	Type string `form:"type"`
	Done *bool  `form:"done"`
}

// ActivityResponse is the response shape of an activity.
type ActivityResponse struct {
	ActivityID  string    `json:"activityID"`
	ClientID    string    `json:"clientID"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Done        bool      `json:"done"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ToActivityResponse converts a domain Activity to its response shape.
func ToActivityResponse(a *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ActivityID:  a.ActivityID,
		ClientID:    a.ClientID,
		Type:        string(a.Type),
		Description: a.Description,
		Date:        a.Date,
		Done:        a.Done,
		Priority:    string(a.Priority),
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

// ToActivityResponses converts a slice of domain Activities.
func ToActivityResponses(activities []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, len(activities))
	for i := range activities {
		out[i] = ToActivityResponse(&activities[i])
	}
	return out
}
