package repositories

import (
	"context"
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// ClientListFilter is the filter-specification value object for client
// listings, built once per request and passed down instead of being mutated
// in place.
type ClientListFilter struct {
	Status     *domain.ClientStatus
	AssignedTo *string
}

// ClientReader defines read operations for client data.
type ClientReader interface {
	// FindClientByID retrieves a client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves clients matching the filter, newest first.
	ListClients(ctx context.Context, filter ClientListFilter) ([]domain.Client, error)

	// ListClientIDsByAssignee retrieves the ids of all clients assigned to a
	// user. Used to scope employee-visible aggregates.
	ListClientIDsByAssignee(ctx context.Context, userID string) ([]string, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient persists the mutable fields of an existing client.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, clientID string) error

	// UpdateFeedbackAggregates sets the denormalized rating fields recomputed
	// from approved feedback.
	UpdateFeedbackAggregates(ctx context.Context, clientID string, averageRating float64, feedbackCount int, updatedAt time.Time) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
