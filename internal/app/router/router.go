// Package router wires the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/ratelimit"
)

// NewRouter builds the Gin engine with all routes registered.
func NewRouter(authH *authhandler.AuthHandler, taskH *taskhandler.TaskHandler,
	tokens jwtmw.Verifier, limiter *ratelimit.Limiter) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)

	auth := r.Group("/api/auth")
	{
		// 新規ユーザー登録
		auth.POST("/register", authH.Register)
		// ログイン（セッショントークン発行）
		// 認証情報の総当たり対策としてレートリミットを適用
		auth.POST("/login", ratelimit.Middleware(limiter), authH.Login)
		// パスワードリセットリンクの発行
		auth.POST("/forgot-password", ratelimit.Middleware(limiter), authH.ForgotPassword)
		// リセットトークンによるパスワード更新
		auth.POST("/reset-password/:token", authH.ResetPassword)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに Bearer トークンが必要になる
	tasks := r.Group("/api/tasks")
	tasks.Use(jwtmw.AuthRequired(tokens))
	{
		tasks.GET("", taskH.List)
		tasks.POST("", taskH.Create)
		tasks.PUT("/:id", taskH.Update)
		tasks.DELETE("/:id", taskH.Delete)
	}

	return r
}

// health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
