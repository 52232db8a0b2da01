// Package usecase はtasksフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"task_backend/internal/feature/tasks/domain/entity"
)

// Pagination defaults for task listing.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListFilter narrows and paginates an owner-scoped task listing.
type ListFilter struct {
	// Page is 1-based; values below 1 fall back to 1.
	Page int
	// Limit is the page size; values below 1 fall back to 10.
	Limit int
	// Status filters by exact status when non-empty.
	Status string
	// Search matches the task name case-insensitively when non-empty.
	Search string
}

// ListResult is the paginated outcome of a task listing.
type ListResult struct {
	Tasks       []entity.Task
	TotalTasks  int64
	CurrentPage int
	TotalPages  int
}

// TaskRepository はタスクエンティティの永続化層を抽象化します。
// すべての読み書きは所有者IDでスコープされます。
type TaskRepository interface {
	// Create は新しいタスクをストレージに永続化します。
	Create(ctx context.Context, task *entity.Task) error

	// List は所有者のタスクをフィルタ・ページング付きで取得し、
	// フィルタ適用後の総件数も返します。
	List(ctx context.Context, ownerID string, f ListFilter) ([]entity.Task, int64, error)

	// FindByIDAndOwner は所有者のタスクをIDで取得します。
	// 他人のタスクや存在しないIDは ErrTaskNotFound になります。
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Task, error)

	// Save は既存タスクの変更を永続化します。
	Save(ctx context.Context, task *entity.Task) error

	// DeleteByIDAndOwner は所有者のタスクを削除します。
	// 対象がない場合は ErrTaskNotFound を返します。
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// UpdateInput carries the optional fields of a partial task update.
// Nil pointers leave the corresponding field untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Status      *string
}

// taskUsecase はタスクのビジネスロジックを実装します。
type taskUsecase struct {
	tasks TaskRepository
}

// NewTaskUsecase はtaskUsecaseの新しいインスタンスを生成します。
func NewTaskUsecase(tasks TaskRepository) *taskUsecase {
	return &taskUsecase{tasks: tasks}
}

// List は認証済みユーザーのタスク一覧をページング付きで返します。
// 所有者IDは必ずリクエストコンテキストの識別情報から渡されます。
func (u *taskUsecase) List(ctx context.Context, ownerID string, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Status != "" && !entity.ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}

	tasks, total, err := u.tasks.List(ctx, ownerID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))

	return &ListResult{
		Tasks:       tasks,
		TotalTasks:  total,
		CurrentPage: f.Page,
		TotalPages:  totalPages,
	}, nil
}

// Create は認証済みユーザーの新しいタスクを作成します。
// ステータス未指定時はpendingになります。
func (u *taskUsecase) Create(ctx context.Context, ownerID, name, description, status string) (*entity.Task, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if status == "" {
		status = entity.StatusPending
	}
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	task := &entity.Task{
		Name:        name,
		Description: description,
		Status:      status,
		UserID:      ownerID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update は所有者のタスクを部分更新します。
// 他人のタスクは存在しないタスクと同様に ErrTaskNotFound になります。
func (u *taskUsecase) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*entity.Task, error) {
	task, err := u.tasks.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrNameRequired
		}
		task.Name = *in.Name
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *in.Status
	}

	if err := u.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete は所有者のタスクを削除します。
func (u *taskUsecase) Delete(ctx context.Context, ownerID, id string) error {
	return u.tasks.DeleteByIDAndOwner(ctx, id, ownerID)
}
