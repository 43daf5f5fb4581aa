package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data.
type ClientReaderSvc interface {
	// GetClientByID retrieves a client visible to the actor. Returns
	// apperrors.ErrForbidden when an employee reaches for a client assigned
	// to someone else.
	GetClientByID(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error)

	// ListClients retrieves the clients visible to the actor, optionally
	// filtered by status and assignee. Employees only ever see their own.
	ListClients(ctx context.Context, params dto.ListClientsParams, actor domain.Actor) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data.
type ClientWriterSvc interface {
	// CreateClient creates a new client/lead in status "new". Employees are
	// always the assignee of clients they create.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, actor domain.Actor) (*domain.Client, error)

	// UpdateClient applies a partial update to a client visible to the actor.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actor domain.Actor) (*domain.Client, error)

	// UpdateClientStatus moves the client along the pipeline.
	UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus, actor domain.Actor) (*domain.Client, error)

	// AssignClient reassigns the client to another employee. Manager only.
	AssignClient(ctx context.Context, clientID string, assignedTo string, actor domain.Actor) (*domain.Client, error)

	// DeleteClient removes a client. Manager only.
	DeleteClient(ctx context.Context, clientID string, actor domain.Actor) error

	// RequestFeedback flags a won client as awaiting feedback.
	RequestFeedback(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error)
}

// ClientAuthorizerSvc gates per-client access for the sub-resource services
// (activities, expenses, invoices), which all share the same rule: managers
// see everything, employees only their assigned clients.
type ClientAuthorizerSvc interface {
	// AuthorizeClientAccess loads the client and checks the actor may act on
	// it. Returns apperrors.ErrForbidden when not.
	AuthorizeClientAccess(ctx context.Context, clientID string, actor domain.Actor) (*domain.Client, error)
}

// ClientSvcFacade combines all client-related service interfaces.
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientAuthorizerSvc
}
