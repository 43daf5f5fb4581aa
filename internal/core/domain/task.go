package domain

import "time"

// TaskPriority ranks a task; extends the activity scale with "urgent".
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// TaskStatus is the lifecycle state of an assigned task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatus reports whether s is a member of the status enum.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Task is a unit of work assigned by a manager to an employee, optionally
// tied to a client.
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
