// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/usecase"
)

// pgUniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// userGorm はUserRepositoryインターフェースのgorm実装です。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create はユーザーをデータベースに追加します。
// 一意制約違反はどのカラムで起きたかに応じて
// usecase.ErrEmailAlreadyExists / usecase.ErrMobileAlreadyExists に変換されます。
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

// translateUniqueViolation maps a driver-level duplicate-key error onto the
// usecase sentinel for the violated column. Other errors pass through.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail + " " + pgErr.ConstraintName
		if strings.Contains(detail, "mobile_number") {
			return usecase.ErrMobileAlreadyExists
		}
		if strings.Contains(detail, "email") {
			return usecase.ErrEmailAlreadyExists
		}
	}

	// sqliteドライバー（テスト）のUNIQUE違反にも同じ変換を適用する
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if strings.Contains(msg, "mobile_number") {
			return usecase.ErrMobileAlreadyExists
		}
		if strings.Contains(msg, "email") {
			return usecase.ErrEmailAlreadyExists
		}
	}

	return err
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetResetToken はリセットトークンのハッシュと有効期限をユーザーに保存します。
func (r *userGorm) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"reset_password_token":   tokenHash,
			"reset_password_expires": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken はハッシュが一致し期限内のユーザーのパスワードを更新し、
// 同じUPDATE文でリセットトークンをクリアします。行ロック下の条件付き更新に
// することで、同じトークンの並行使用は片方だけが成功します。
func (r *userGorm) ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, now).
		Updates(map[string]any{
			"password":               newPasswordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// ハッシュ不一致・期限切れ・消費済みを区別しない
		return usecase.ErrResetTokenInvalid
	}
	return nil
}
