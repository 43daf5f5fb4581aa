package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelClient converts a domain Client to a model Client.
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:            d.ClientID,
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		Company:             d.Company,
		Status:              models.ClientStatus(d.Status),
		AssignedTo:          d.AssignedTo,
		Notes:               d.Notes,
		EstimatedValue:      d.EstimatedValue,
		LastContactDate:     d.LastContactDate,
		FeedbackRequested:   d.FeedbackRequested,
		FeedbackRequestedAt: d.FeedbackRequestedAt,
		AverageRating:       d.AverageRating,
		FeedbackCount:       d.FeedbackCount,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client.
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:            m.ClientID,
		Name:                m.Name,
		Email:               m.Email,
		Phone:               m.Phone,
		Company:             m.Company,
		Status:              domain.ClientStatus(m.Status),
		AssignedTo:          m.AssignedTo,
		Notes:               m.Notes,
		EstimatedValue:      m.EstimatedValue,
		LastContactDate:     m.LastContactDate,
		FeedbackRequested:   m.FeedbackRequested,
		FeedbackRequestedAt: m.FeedbackRequestedAt,
		AverageRating:       m.AverageRating,
		FeedbackCount:       m.FeedbackCount,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClientSlice converts a slice of model Clients to domain Clients.
func ToDomainClientSlice(ms []models.Client) []domain.Client {
	ds := make([]domain.Client, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClient(m)
	}
	return ds
}
