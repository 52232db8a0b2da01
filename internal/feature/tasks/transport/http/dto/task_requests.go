// Package dto defines data transfer objects for the tasks feature's HTTP transport layer.
package dto

// CreateTaskReq represents the request body for POST /api/tasks.
// Status is optional and defaults to pending.
type CreateTaskReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}

// UpdateTaskReq represents the request body for PUT /api/tasks/:id.
// All fields are optional; absent fields are left unchanged.
type UpdateTaskReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
}

// ListTasksQuery binds the query string of GET /api/tasks.
type ListTasksQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Search string `form:"search"`
}
