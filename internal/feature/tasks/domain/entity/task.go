// Package entity defines the domain entities for the tasks feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "task_backend/internal/feature/auth/domain/entity"
)

// Task status values.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the accepted task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task represents a single to-do item owned by exactly one user.
// A task is only visible and mutable through requests authenticated as its owner.
type Task struct {
	// ID is the unique identifier for the task (UUID v4).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Name is the short task title. Required.
	Name string `gorm:"size:255;not null" json:"name"`

	// Description is an optional longer text.
	Description string `gorm:"type:text" json:"description"`

	// Status is one of pending, in-progress or completed.
	Status string `gorm:"size:20;not null;default:pending" json:"status"`

	// UserID references the owning user. Deleting the user deletes all
	// owned tasks at the constraint level.
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`

	// User is the association carrying the cascade rule; it is never serialized.
	User authentity.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key and the default status when unset.
func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}
