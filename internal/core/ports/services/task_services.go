package services

import (
	"context"

	"github.com/clienthub/crm_backend/internal/core/domain"
	"github.com/clienthub/crm_backend/internal/dto"
)

// TaskReaderSvc defines read operations for task data.
type TaskReaderSvc interface {
	// GetTaskByID retrieves a task visible to the actor. Employees only see
	// tasks assigned to them.
	GetTaskByID(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error)

	// ListTasks retrieves a page of tasks visible to the actor with the
	// total count. Managers see all tasks, employees their own.
	ListTasks(ctx context.Context, params dto.ListTasksParams, actor domain.Actor) ([]domain.Task, int, error)

	// ListMyTasks retrieves a page of the actor's own assigned tasks,
	// regardless of role.
	ListMyTasks(ctx context.Context, params dto.ListTasksParams, actor domain.Actor) ([]domain.Task, int, error)

	// GetTaskStats aggregates tasks by lifecycle state. Managers see the
	// whole board, employees only their own assignments.
	GetTaskStats(ctx context.Context, actor domain.Actor) (*dto.TaskStatsResponse, error)
}

// TaskWriterSvc defines write operations for task data.
type TaskWriterSvc interface {
	// CreateTask assigns a new task to an employee. Manager only.
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor domain.Actor) (*domain.Task, error)

	// UpdateTask applies a partial update to a task. Manager only.
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, actor domain.Actor) (*domain.Task, error)

	// UpdateTaskStatus moves the task along its lifecycle. The assignee may
	// update their own task; managers may update any.
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, actor domain.Actor) (*domain.Task, error)

	// DeleteTask removes a task. Manager only.
	DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error
}

// TaskSvcFacade combines all task-related service interfaces.
type TaskSvcFacade interface {
	TaskReaderSvc
	TaskWriterSvc
}
