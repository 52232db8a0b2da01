// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for a user.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// User represents a registered user in the system.
// It contains authentication credentials and the password-reset token state.
type User struct {
	// ID is the unique identifier for the user (UUID v4).
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// MobileNumber must be unique across all users.
	MobileNumber string `gorm:"column:mobile_number;uniqueIndex;size:32;not null" json:"mobileNumber"`

	// Password is the bcrypt hash of the user's password.
	// This must never store a plaintext password.
	Password string `gorm:"size:255;not null" json:"-"`

	Country string `gorm:"size:128;not null" json:"country"`
	City    string `gorm:"size:128;not null" json:"city"`
	State   string `gorm:"size:128;not null" json:"state"`

	// Gender is one of Male, Female or Other.
	Gender string `gorm:"size:16;not null" json:"gender"`

	// ResetPasswordToken holds the SHA-256 hex digest of an outstanding
	// password-reset token, nil when no reset is pending.
	ResetPasswordToken *string `gorm:"size:64" json:"-"`

	// ResetPasswordExpires is the expiry of the outstanding reset token.
	ResetPasswordExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
