package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelActivity converts a domain Activity to a model Activity.
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID:  d.ActivityID,
		ClientID:    d.ClientID,
		Type:        models.ActivityType(d.Type),
		Description: d.Description,
		Date:        d.Date,
		Done:        d.Done,
		Priority:    models.ActivityPriority(d.Priority),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainActivity converts a model Activity to a domain Activity.
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:  m.ActivityID,
		ClientID:    m.ClientID,
		Type:        domain.ActivityType(m.Type),
		Description: m.Description,
		Date:        m.Date,
		Done:        m.Done,
		Priority:    domain.ActivityPriority(m.Priority),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainActivitySlice converts a slice of model Activities to domain Activities.
func ToDomainActivitySlice(ms []models.Activity) []domain.Activity {
	ds := make([]domain.Activity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}
