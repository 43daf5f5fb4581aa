package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clienthub/crm_backend/internal/apperrors"
	"github.com/clienthub/crm_backend/internal/core/domain"
	portsrepo "github.com/clienthub/crm_backend/internal/core/ports/repositories"
	portssvc "github.com/clienthub/crm_backend/internal/core/ports/services"
	"github.com/clienthub/crm_backend/internal/dto"
	"github.com/clienthub/crm_backend/internal/middleware"
	"github.com/clienthub/crm_backend/internal/utils"
	"github.com/google/uuid"
)

const defaultTaskPageSize = 20

type taskService struct {
	taskRepo   portsrepo.TaskRepositoryFacade
	userRepo   portsrepo.UserReader
	clientRepo portsrepo.ClientReader
}

// NewTaskService creates the task assignment service.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, userRepo portsrepo.UserReader, clientRepo portsrepo.ClientReader) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, userRepo: userRepo, clientRepo: clientRepo}
}

func validTaskPriority(p domain.TaskPriority) bool {
	switch p {
	case domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh, domain.TaskPriorityUrgent:
		return true
	}
	return false
}

func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, actor domain.Actor) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.userRepo.FindUserByID(ctx, req.AssignedTo); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(400, "assignee does not exist", apperrors.ErrValidation)
		}
		return nil, err
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindClientByID(ctx, *req.ClientID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(400, "client does not exist", apperrors.ErrValidation)
			}
			return nil, err
		}
	}

	priority := domain.TaskPriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !validTaskPriority(priority) {
			return nil, apperrors.NewAppError(400, "invalid task priority", apperrors.ErrValidation)
		}
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			return nil, apperrors.NewAppError(400, "invalid due date", apperrors.ErrValidation)
		}
		dueDate = &parsed
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  actor.UserID,
		ClientID:    req.ClientID,
		Priority:    priority,
		Status:      domain.TaskPending,
		DueDate:     dueDate,
		Notes:       req.Notes,
		Tags:        req.Tags,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		logger.Error("Failed to save task", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Task created", slog.String("task_id", task.TaskID), slog.String("assigned_to", task.AssignedTo))
	return &task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, taskID string, actor domain.Actor) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && task.AssignedTo != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}

func buildTaskFilter(params dto.ListTasksParams) (portsrepo.TaskListFilter, error) {
	params.Normalize(defaultTaskPageSize)
	filter := portsrepo.TaskListFilter{
		Limit:  params.Limit,
		Offset: params.Offset(),
	}
	if params.Status != "" {
		status := domain.TaskStatus(params.Status)
		if !domain.ValidTaskStatus(status) {
			return filter, apperrors.NewAppError(400, "invalid task status filter", apperrors.ErrValidation)
		}
		filter.Status = &status
	}
	if params.Priority != "" {
		priority := domain.TaskPriority(params.Priority)
		if !validTaskPriority(priority) {
			return filter, apperrors.NewAppError(400, "invalid task priority filter", apperrors.ErrValidation)
		}
		filter.Priority = &priority
	}
	return filter, nil
}

func (s *taskService) ListTasks(ctx context.Context, params dto.ListTasksParams, actor domain.Actor) ([]domain.Task, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := buildTaskFilter(params)
	if err != nil {
		return nil, 0, err
	}
	if !actor.IsManager() {
		assignedTo := actor.UserID
		filter.AssignedTo = &assignedTo
	}

	tasks, total, err := s.taskRepo.ListTasks(ctx, filter)
	if err != nil {
		logger.Error("Failed to list tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, total, nil
}

// ListMyTasks is the actor's personal worklist: always scoped to their own
// assignments, even for managers.
func (s *taskService) ListMyTasks(ctx context.Context, params dto.ListTasksParams, actor domain.Actor) ([]domain.Task, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter, err := buildTaskFilter(params)
	if err != nil {
		return nil, 0, err
	}
	assignedTo := actor.UserID
	filter.AssignedTo = &assignedTo

	tasks, total, err := s.taskRepo.ListTasks(ctx, filter)
	if err != nil {
		logger.Error("Failed to list own tasks", slog.String("error", err.Error()))
		return nil, 0, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, total, nil
}

// GetTaskStats mirrors the listing visibility rule: managers aggregate the
// whole board, employees only their own assignments.
func (s *taskService) GetTaskStats(ctx context.Context, actor domain.Actor) (*dto.TaskStatsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var assignedTo *string
	if !actor.IsManager() {
		userID := actor.UserID
		assignedTo = &userID
	}

	stats, err := s.taskRepo.GetTaskStats(ctx, assignedTo)
	if err != nil {
		logger.Error("Failed to compute task stats", slog.String("error", err.Error()))
		return nil, err
	}

	completionRate := 0.0
	if stats.Total > 0 {
		completionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return &dto.TaskStatsResponse{
		TotalTasks:      stats.Total,
		CompletedTasks:  stats.Completed,
		PendingTasks:    stats.Pending,
		InProgressTasks: stats.InProgress,
		OverdueTasks:    stats.Overdue,
		CompletionRate:  completionRate,
	}, nil
}

func (s *taskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, actor domain.Actor) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return nil, apperrors.ErrForbidden
	}

	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		if !validTaskPriority(priority) {
			return nil, apperrors.NewAppError(400, "invalid task priority", apperrors.ErrValidation)
		}
		task.Priority = priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			parsed, err := utils.ParseDate(*req.DueDate)
			if err != nil {
				return nil, apperrors.NewAppError(400, "invalid due date", apperrors.ErrValidation)
			}
			task.DueDate = &parsed
		}
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}

	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = actor.UserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to update task", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, actor domain.Actor) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidTaskStatus(status) {
		return nil, apperrors.NewAppError(400, "invalid task status", apperrors.ErrValidation)
	}

	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() && task.AssignedTo != actor.UserID {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	task.Status = status
	if status == domain.TaskCompleted {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.LastUpdatedAt = now
	task.LastUpdatedBy = actor.UserID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to update task status", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, err
	}

	logger.Info("Task status updated", slog.String("task_id", taskID), slog.String("status", string(status)))
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsManager() {
		return apperrors.ErrForbidden
	}
	if _, err := s.taskRepo.FindTaskByID(ctx, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.DeleteTask(ctx, taskID); err != nil {
		logger.Error("Failed to delete task", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return err
	}

	logger.Info("Task deleted", slog.String("task_id", taskID))
	return nil
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)
