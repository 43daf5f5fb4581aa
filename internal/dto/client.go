package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest is the payload for creating a client/lead.
type CreateClientRequest struct {
	Name           string           `json:"name" binding:"required"`
	Email          string           `json:"email" binding:"required,email"`
	Phone          string           `json:"phone" binding:"required"`
	Company        string           `json:"company" binding:"required"`
	Notes          string           `json:"notes"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue"`
	AssignedTo     string           `json:"assignedTo"`
}

// UpdateClientRequest is the partial-update payload for a client. Nil fields
// are left untouched.
type UpdateClientRequest struct {
	Name           *string          `json:"name"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Company        *string          `json:"company"`
	Notes          *string          `json:"notes"`
	EstimatedValue *decimal.Decimal `json:"estimatedValue"`
	AssignedTo     *string          `json:"assignedTo"`
}

// UpdateClientStatusRequest moves a client along the pipeline.
type UpdateClientStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignClientRequest reassigns a client to an employee.
type AssignClientRequest struct {
	AssignedTo string `json:"assignedTo" binding:"required"`
}

// ListClientsParams are the query filters for the client list.
type ListClientsParams struct {
	Status     string `form:"status"`
	AssignedTo string `form:"assignedTo"`
}

// ClientResponse is the response shape of a client.
type ClientResponse struct {
	ClientID          string          `json:"clientID"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Company           string          `json:"company"`
	Status            string          `json:"status"`
	AssignedTo        string          `json:"assignedTo"`
	Notes             string          `json:"notes"`
	EstimatedValue    decimal.Decimal `json:"estimatedValue"`
	LastContactDate   time.Time       `json:"lastContactDate"`
	FeedbackRequested bool            `json:"feedbackRequested"`
	AverageRating     float64         `json:"averageRating"`
	FeedbackCount     int             `json:"feedbackCount"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ToClientResponse converts a domain Client to its response shape.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:          c.ClientID,
		Name:              c.Name,
		Email:             c.Email,
		Phone:             c.Phone,
		Company:           c.Company,
		Status:            string(c.Status),
		AssignedTo:        c.AssignedTo,
		Notes:             c.Notes,
		EstimatedValue:    c.EstimatedValue,
		LastContactDate:   c.LastContactDate,
		FeedbackRequested: c.FeedbackRequested,
		AverageRating:     c.AverageRating,
		FeedbackCount:     c.FeedbackCount,
		CreatedAt:         c.CreatedAt,
		CreatedBy:         c.CreatedBy,
	}
}

// ToClientResponses converts a slice of domain Clients.
func ToClientResponses(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}
