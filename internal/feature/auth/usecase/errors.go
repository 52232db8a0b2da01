// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrMobileAlreadyExists is returned when attempting to create a user with a mobile number that already exists.
	ErrMobileAlreadyExists = errors.New("mobile number already exists")

	// ErrInvalidCredentials is returned on login when the email is unknown or the
	// password does not match. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrResetTokenInvalid is returned when a password-reset token does not match
	// any user, has expired, or was already consumed. One outcome for all three.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)
