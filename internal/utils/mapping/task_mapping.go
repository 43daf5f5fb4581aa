package mapping

import (
	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/models"
)

// ToModelTask converts a domain Task to a model Task.
func ToModelTask(d domain.Task) models.Task {
	return models.Task{
		TaskID:      d.TaskID,
		Title:       d.Title,
		Description: d.Description,
		AssignedTo:  d.AssignedTo,
		AssignedBy:  d.AssignedBy,
		ClientID:    d.ClientID,
		Priority:    models.TaskPriority(d.Priority),
		Status:      models.TaskStatus(d.Status),
		DueDate:     d.DueDate,
		CompletedAt: d.CompletedAt,
		Notes:       d.Notes,
		Tags:        d.Tags,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTask converts a model Task to a domain Task.
func ToDomainTask(m models.Task) domain.Task {
	return domain.Task{
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		AssignedTo:  m.AssignedTo,
		AssignedBy:  m.AssignedBy,
		ClientID:    m.ClientID,
		Priority:    domain.TaskPriority(m.Priority),
		Status:      domain.TaskStatus(m.Status),
		DueDate:     m.DueDate,
		CompletedAt: m.CompletedAt,
		Notes:       m.Notes,
		Tags:        m.Tags,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaskSlice converts a slice of model Tasks to domain Tasks.
func ToDomainTaskSlice(ms []models.Task) []domain.Task {
	ds := make([]domain.Task, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTask(m)
	}
	return ds
}
