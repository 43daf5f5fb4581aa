package dto

import (
	"time"

	"github.com/clienthub/crm_backend/internal/core/domain"
)

// CreateTaskRequest is the payload for a manager assigning a task.
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	AssignedTo  string   `json:"assignedTo" binding:"required"`
	ClientID    *string  `json:"clientID"`
	Priority    string   `json:"priority"`
	DueDate     *string  `json:"dueDate"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

// UpdateTaskRequest is the partial-update payload for a task.
type UpdateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
}

// UpdateTaskStatusRequest moves a task along its lifecycle.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListTasksParams are the query filters for task listings.
type ListTasksParams struct {
	PageParams
	Status   string `form:"status"`
	Priority string `form:"priority"`
}

// TaskStatsResponse aggregates the actor's visible tasks by lifecycle state.
type TaskStatsResponse struct {
	TotalTasks      int     `json:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	PendingTasks    int     `json:"pendingTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	OverdueTasks    int     `json:"overdueTasks"`
	CompletionRate  float64 `json:"completionRate"`
}

// TaskResponse is the response shape of a task.
type TaskResponse struct {
	TaskID      string     `json:"taskID"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	AssignedBy  string     `json:"assignedBy"`
	ClientID    *string    `json:"clientID,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToTaskResponse converts a domain Task to its response shape.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		AssignedBy:  t.AssignedBy,
		ClientID:    t.ClientID,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Notes:       t.Notes,
		Tags:        t.Tags,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTaskResponses converts a slice of domain Tasks.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = ToTaskResponse(&tasks[i])
	}
	return out
}
