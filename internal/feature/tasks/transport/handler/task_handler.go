// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/transport/http/dto"
	"task_backend/internal/feature/tasks/usecase"
	jwtmw "task_backend/internal/platform/jwt"
)

// TaskUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TaskUsecase interface {
	List(ctx context.Context, ownerID string, f usecase.ListFilter) (*usecase.ListResult, error)
	Create(ctx context.Context, ownerID, name, description, status string) (*entity.Task, error)
	Update(ctx context.Context, ownerID, id string, in usecase.UpdateInput) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
// 所有者IDは常に認証ミドルウェアが設定したコンテキストから取得し、
// クライアント入力からは決して取得しません。
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ownerID extracts the authenticated user ID set by the auth middleware.
func ownerID(c *gin.Context) (string, bool) {
	id, ok := jwtmw.IdentityFromContext(c)
	if !ok {
		// ミドルウェアを経由していないリクエストはここで遮断する
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.StatusResponse{Success: false, Message: "Unauthorized"})
	}
	return id, ok
}

// List はGET /api/tasksを処理します。
// page/limit/status/searchクエリを受け付け、所有タスクのみを返します。
func (h *TaskHandler) List(c *gin.Context) {
	uid, ok := ownerID(c)
	if !ok {
		return
	}

	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "Invalid query"})
		return
	}

	result, err := h.tasks.List(c.Request.Context(), uid, usecase.ListFilter{
		Page:   q.Page,
		Limit:  q.Limit,
		Status: q.Status,
		Search: q.Search,
	})
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "Server Error"})
		return
	}

	if result.Tasks == nil {
		result.Tasks = []entity.Task{}
	}

	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Success:     true,
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalTasks:  result.TotalTasks,
		Tasks:       result.Tasks,
	})
}

// Create はPOST /api/tasksを処理します。
// nameは必須、statusは省略時pendingです。
func (h *TaskHandler) Create(c *gin.Context) {
	uid, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "Missing required fields"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), uid, req.Name, req.Description, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNameRequired), errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "Missing required fields"})
		default:
			slog.Error("failed to create task", "error", err, "user_id", uid)
			c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "Server Error"})
		}
		return
	}

	slog.Info("task created", "task_id", task.ID, "user_id", uid)
	c.JSON(http.StatusCreated, dto.TaskResponse{Success: true, Message: "Task Created", Task: task})
}

// Update はPUT /api/tasks/:idを処理します。
// 他人のタスクと存在しないIDはどちらも404になります。
func (h *TaskHandler) Update(c *gin.Context) {
	uid, ok := ownerID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "Invalid request"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), uid, c.Param("id"), usecase.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, dto.StatusResponse{Success: false, Message: "Task not found"})
		case errors.Is(err, usecase.ErrNameRequired), errors.Is(err, usecase.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, dto.StatusResponse{Success: false, Message: "Invalid request"})
		default:
			slog.Error("failed to update task", "error", err, "user_id", uid)
			c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{Success: true, Message: "Task Updated", Task: task})
}

// Delete はDELETE /api/tasks/:idを処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	uid, ok := ownerID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, dto.StatusResponse{Success: false, Message: "Task not found"})
			return
		}
		slog.Error("failed to delete task", "error", err, "user_id", uid)
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Success: false, Message: "Server Error"})
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Success: true, Message: "Task Deleted"})
}
