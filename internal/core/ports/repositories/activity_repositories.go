package repositories

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// ActivityListFilter is the filter-specification value object for activity
// listings.
type ActivityListFilter struct {
	ClientID  *string
	ClientIDs []string // non-empty: restrict to these clients (employee scope)
	Type      *domain.ActivityType
	Done      *bool
	Limit     int
	Offset    int
}

// ActivityReader defines read operations for activity data.
type ActivityReader interface {
	// FindActivityByID retrieves an activity by its unique identifier.
	FindActivityByID(ctx context.Context, activityID string) (*domain.Activity, error)

	// ListActivities retrieves a page of activities matching the filter,
	// newest first, along with the total row count.
	ListActivities(ctx context.Context, filter ActivityListFilter) ([]domain.Activity, int, error)
}

// ActivityWriter defines write operations for activity data.
type ActivityWriter interface {
	// SaveActivity persists a new activity.
	SaveActivity(ctx context.Context, activity domain.Activity) error

	// UpdateActivity persists the mutable fields of an activity.
	UpdateActivity(ctx context.Context, activity domain.Activity) error

	// DeleteActivity removes an activity.
	DeleteActivity(ctx context.Context, activityID string) error
}

// ActivityRepositoryFacade combines all activity repository interfaces.
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
