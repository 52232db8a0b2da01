// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"task_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// メールアドレスまたは携帯番号が既に存在する場合、
	// ErrEmailAlreadyExists / ErrMobileAlreadyExists を返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFound を返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// SetResetToken はリセットトークンのハッシュと有効期限をユーザーに保存します。
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// ConsumeResetToken は保存されたハッシュと有効期限が一致するユーザーの
	// パスワードを更新し、同時にリセットトークンをクリアします。
	// 単一の条件付きUPDATEで行い、一致しない場合は ErrResetTokenInvalid を返します。
	ConsumeResetToken(ctx context.Context, tokenHash, newPasswordHash string, now time.Time) error
}

// TokenIssuer はセッショントークン発行のインターフェースを定義します。
type TokenIssuer interface {
	// Issue は指定されたユーザーの署名済みセッショントークンを生成します。
	Issue(userID, email string) (string, error)
}

// EmailSender は通知チャネルを抽象化します。送信の失敗は
// 呼び出し元の永続化済み状態をロールバックしません。
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Name         string
	Email        string
	MobileNumber string
	Password     string
	Country      string
	City         string
	State        string
	Gender       string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	tokens       TokenIssuer
	mailer       EmailSender
	resetBaseURL string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, mailer EmailSender, resetBaseURL string) *authUsecase {
	return &authUsecase{
		users:        users,
		tokens:       tokens,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// セッショントークンを発行します。
// メール重複は事前チェックと書き込み時の一意制約の両方で検出します
// （事前チェックと書き込みの間のレース対策）。
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (string, *entity.User, error) {
	// 事前チェック: 同じメールアドレスのユーザーが既に存在するか
	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return "", nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		Password:     string(hashed),
		Country:      in.Country,
		City:         in.City,
		State:        in.State,
		Gender:       in.Gender,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// 一意制約違反はリポジトリが ErrEmailAlreadyExists /
		// ErrMobileAlreadyExists に変換して返す
		return "", nil, err
	}

	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// Login はユーザーを認証し、成功時にセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一の汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.Issue(user.ID, user.Email)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, user, nil
}

// ForgotPassword はリセットトークンを発行してユーザーに保存し、
// リセットリンクをメールで送信します。
// トークンの永続化が完了してから送信します。送信に失敗しても
// トークンは有効なまま残り、再リクエストでリトライできます。
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	plaintext, hash, expiresAt, err := GenerateResetToken()
	if err != nil {
		return err
	}

	if err := u.users.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", u.resetBaseURL, plaintext)
	body := fmt.Sprintf("You requested a password reset. Click the link below to reset your password:\n\n%s\n\nIf you did not request this, ignore this email.", resetURL)

	if err := u.mailer.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		// トークンは永続化済みなのでロールバックしない
		slog.Error("failed to send password reset email", "error", err, "email", user.Email)
	}

	return nil
}

// ResetPassword は平文トークンのハッシュを再計算し、一致して期限内の
// ユーザーのパスワードを更新します。更新とトークンのクリアは
// リポジトリ側で1回の条件付きUPDATEとして実行されます。
func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash := HashResetToken(token)

	newPasswordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return u.users.ConsumeResetToken(ctx, hash, string(newPasswordHash), time.Now())
}
