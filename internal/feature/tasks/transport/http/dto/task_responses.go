package dto

import "task_backend/internal/feature/tasks/domain/entity"

// TaskResponse wraps a single task mutation result.
type TaskResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Task    *entity.Task `json:"task,omitempty"`
}

// ListTasksResponse is the paginated listing envelope.
type ListTasksResponse struct {
	Success     bool          `json:"success"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalTasks  int64         `json:"totalTasks"`
	Tasks       []entity.Task `json:"tasks"`
}

// StatusResponse is the generic success/message body for task operations.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
