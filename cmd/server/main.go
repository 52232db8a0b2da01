package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/router"
	"task_backend/internal/config"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	infradb "task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/mail"
	"task_backend/internal/platform/ratelimit"
	infraredis "task_backend/internal/platform/redis"
)

func main() {
	// 設定は起動時に一度だけ読み込み、以降は不変
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	db := infradb.OpenDB(cfg.Database)

	// Redis（任意。未設定・接続不可ならレートリミットなしで動作）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. Running without rate limiting.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Platform services
	tokens := jwtmw.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	mailer := mail.NewSMTPSender(cfg.SMTP)
	limiter := ratelimit.NewLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, "auth")

	// Repository
	userRepo := authadapters.NewUserGorm(db)
	taskRepo := taskadapters.NewTaskGorm(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, mailer, cfg.Reset.BaseURL)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// ルータ生成
	r := router.NewRouter(authH, taskH, tokens, limiter)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
