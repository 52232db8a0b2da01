// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/feature/auth/domain/entity"
	"task_backend/internal/feature/auth/transport/http/dto"
	"task_backend/internal/feature/auth/usecase"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、セッショントークンとユーザーを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, *entity.User, error)
	// Login はユーザーを認証し、成功時にセッショントークンとユーザーを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// ForgotPassword はリセットトークンを発行し、リセットリンクをメール送信します。
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword はリセットトークンを検証してパスワードを更新します。
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール/携帯番号の重複時はフィールド別メッセージで400を返却
// - 成功時はトークンと公開ユーザー情報付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request"})
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Password:     req.Password,
		Country:      req.Country,
		City:         req.City,
		State:        req.State,
		Gender:       req.Gender,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Email already exists"})
		case errors.Is(err, usecase.ErrMobileAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Mobile number already exists"})
		default:
			slog.Error("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Something went wrong"})
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 認証失敗時は「存在しないユーザー」と「パスワード不一致」を区別せず、
// 常に同じ401レスポンスを返します（ユーザー列挙攻撃の防止）。
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid credentials"})
			return
		}
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Something went wrong"})
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)})
}

// ForgotPassword はパスワードリセットリンクの発行を処理します。
// 未登録メールには404を返します（元実装どおり。列挙リスクは既知）。
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("forgot-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request"})
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
			return
		}
		slog.Error("forgot-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset link sent to email"})
}

// ResetPassword はリセットトークンによるパスワード更新を処理します。
// トークン不一致・期限切れ・消費済みはすべて同一の400レスポンスになります。
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("reset-password validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request"})
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, usecase.ErrResetTokenInvalid) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid or expired token"})
			return
		}
		slog.Error("reset-password failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}
