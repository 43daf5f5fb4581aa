package models

import "time"

// TaskPriority mirrors domain.TaskPriority at the storage layer.
type TaskPriority string

// TaskStatus mirrors domain.TaskStatus at the storage layer.
type TaskStatus string

// Task is the tasks table row. Tags are stored as a text[] column.
type Task struct {
	TaskID      string       `json:"taskID"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  string       `json:"assignedTo"`
	AssignedBy  string       `json:"assignedBy"`
	ClientID    *string      `json:"clientID,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	Notes       string       `json:"notes"`
	Tags        []string     `json:"tags"`
	AuditFields
}
