package repositories

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// TaskListFilter is the filter-specification value object for task listings.
type TaskListFilter struct {
	AssignedTo *string
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	Limit      int
	Offset     int
}

// TaskStats is the aggregate result of GetTaskStats.
type TaskStats struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

// TaskReader defines read operations for task data.
type TaskReader interface {
	// FindTaskByID retrieves a task by its unique identifier.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListTasks retrieves a page of tasks matching the filter, due date
	// ascending with undated tasks last, along with the total row count.
	ListTasks(ctx context.Context, filter TaskListFilter) ([]domain.Task, int, error)

	// GetTaskStats counts tasks by lifecycle state, optionally restricted to
	// one assignee. Overdue counts dated, uncompleted tasks whose due date
	// has passed.
	GetTaskStats(ctx context.Context, assignedTo *string) (*TaskStats, error)
}

// TaskWriter defines write operations for task data.
type TaskWriter interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// UpdateTask persists the mutable fields of a task.
	UpdateTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID string) error
}

// TaskRepositoryFacade combines all task repository interfaces.
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
