// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Email is the natural key and never changes
// after registration.
type User struct {
	Email        string     // Natural key of the account; the store is keyed by it.
	UserID       uuid.UUID  // Generated once at registration.
	FullName     string     // Display name supplied at registration.
	PasswordHash string     // bcrypt digest. Never leaves the service.
	Height       float64    // Free-form body measurement, not range checked.
	Weight       float64    // Free-form body measurement, not range checked.
	Age          float64    // Free-form, not range checked.
	Gender       Gender     // One of GenderMan or GenderWomen.
	IsLoggedIn   bool       // Session flag, flipped by login and logout.
	LastLogin    *time.Time // Time of the last login or logout. Nil until the first one.
}

// SessionPatch carries the only fields mutated after creation. They are always
// written together.
type SessionPatch struct {
	IsLoggedIn bool
	LastLogin  time.Time
}
