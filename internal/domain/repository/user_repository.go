// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"apilogin/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no record exists for an email.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned by Create when the email is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the credential store. Records are keyed by email.
type UserRepository interface {
	// FindByEmail returns the record for email or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// ExistsByEmail reports whether a record exists for email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create stores user only if no record exists for its email, returning
	// ErrUserAlreadyExists otherwise.
	Create(ctx context.Context, user *entity.User) error

	// UpdateSession merges the session fields into an existing record and
	// leaves every other field untouched. Returns ErrUserNotFound if absent.
	UpdateSession(ctx context.Context, email string, patch entity.SessionPatch) error
}
