// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task matches the given ID for the
	// requesting owner. Tasks owned by other users are indistinguishable from
	// tasks that do not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNameRequired is returned when a task is created without a name.
	ErrNameRequired = errors.New("task name is required")

	// ErrInvalidStatus is returned when a status outside the enumeration is supplied.
	ErrInvalidStatus = errors.New("invalid task status")
)
