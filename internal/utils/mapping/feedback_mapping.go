package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelFeedback converts a domain Feedback to a model Feedback.
func ToModelFeedback(d domain.Feedback) models.Feedback {
	return models.Feedback{
		FeedbackID:     d.FeedbackID,
		ClientID:       d.ClientID,
		Rating:         d.Rating,
		Comment:        d.Comment,
		ServiceQuality: d.ServiceQuality,
		Communication:  d.Communication,
		WouldRecommend: d.WouldRecommend,
		SubmittedBy:    d.SubmittedBy,
		IsAnonymous:    d.IsAnonymous,
		Status:         models.FeedbackStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeedback converts a model Feedback to a domain Feedback.
func ToDomainFeedback(m models.Feedback) domain.Feedback {
	return domain.Feedback{
		FeedbackID:     m.FeedbackID,
		ClientID:       m.ClientID,
		Rating:         m.Rating,
		Comment:        m.Comment,
		ServiceQuality: m.ServiceQuality,
		Communication:  m.Communication,
		WouldRecommend: m.WouldRecommend,
		SubmittedBy:    m.SubmittedBy,
		IsAnonymous:    m.IsAnonymous,
		Status:         domain.FeedbackStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFeedbackSlice converts a slice of model Feedback to domain Feedback.
func ToDomainFeedbackSlice(ms []models.Feedback) []domain.Feedback {
	ds := make([]domain.Feedback, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFeedback(m)
	}
	return ds
}
