package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// ActivityReaderSvc defines read operations for activity data.
type ActivityReaderSvc interface {
	// ListClientActivities retrieves a page of a client's activities, newest
	// first, with the total count.
	ListClientActivities(ctx context.Context, clientID string, params dto.ListActivitiesParams, actor domain.Actor) ([]domain.Activity, int, error)

	// ListRecentActivities retrieves a page across the clients visible to
	// the actor, for the dashboard feed.
	ListRecentActivities(ctx context.Context, params dto.ListActivitiesParams, actor domain.Actor) ([]domain.Activity, int, error)
}

// ActivityWriterSvc defines write operations for activity data.
type ActivityWriterSvc interface {
	// LogActivity records a new interaction against a client and refreshes
	// the client's last contact date.
	LogActivity(ctx context.Context, clientID string, req dto.CreateActivityRequest, actor domain.Actor) (*domain.Activity, error)

	// UpdateActivity applies a partial update to an activity.
	UpdateActivity(ctx context.Context, activityID string, req dto.UpdateActivityRequest, actor domain.Actor) (*domain.Activity, error)

	// DeleteActivity removes an activity.
	DeleteActivity(ctx context.Context, activityID string, actor domain.Actor) error
}

// ActivitySvcFacade combines all activity-related service interfaces.
type ActivitySvcFacade interface {
	ActivityReaderSvc
	ActivityWriterSvc
}
