// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
)

// taskGorm はTaskRepositoryインターフェースのgorm実装です。
// すべてのクエリはuser_idを述語に含みます（owner-scoped query）。
type taskGorm struct {
	db *gorm.DB
}

// taskGormがTaskRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskGorm は指定されたgorm.DB接続でtaskGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewTaskGorm(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create はタスクをデータベースに追加します。
func (r *taskGorm) Create(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// List は所有者のタスクをフィルタ・ページング付きで取得します。
// 名前検索は大文字小文字を区別しない部分一致です。
func (r *taskGorm) List(ctx context.Context, ownerID string, f usecase.ListFilter) ([]entity.Task, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Task{}).Where("user_id = ?", ownerID)

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []entity.Task
	offset := (f.Page - 1) * f.Limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(f.Limit).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// FindByIDAndOwner は所有者のタスクをIDで取得します。
// 他人のタスクと存在しないIDはどちらも usecase.ErrTaskNotFound になります。
func (r *taskGorm) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	var t entity.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save は既存タスクの変更を永続化します。
func (r *taskGorm) Save(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteByIDAndOwner は所有者のタスクを削除します。
// 削除対象がない場合は usecase.ErrTaskNotFound を返します。
func (r *taskGorm) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&entity.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
