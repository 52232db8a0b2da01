// Package db opens the Postgres connection used by all repositories.
package db

import (
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"task_backend/internal/config"
	authentity "task_backend/internal/feature/auth/domain/entity"
	taskentity "task_backend/internal/feature/tasks/domain/entity"
)

// OpenDB connects to Postgres with the given configuration, retrying for up
// to 60 seconds while the database comes up. When RunMigrations is set it
// also migrates the schema.
func OpenDB(cfg config.DatabaseConfig) *gorm.DB {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		// マイグレーション（User, Task）
		// Taskの外部キーはOnDelete:CASCADEで作成される
		if err := db.AutoMigrate(
			&authentity.User{},
			&taskentity.Task{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
