package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthEventType names a successful authentication operation.
type AuthEventType string

const (
	AuthEventRegistered AuthEventType = "user.registered"
	AuthEventLoggedIn   AuthEventType = "user.logged_in"
	AuthEventLoggedOut  AuthEventType = "user.logged_out"
)

// AuthEvent is published after a register, login or logout succeeds.
type AuthEvent struct {
	EventID    uuid.UUID     `json:"event_id"`
	Type       AuthEventType `json:"type"`
	Email      string        `json:"email"`
	UserID     string        `json:"user_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	RequestID  string        `json:"request_id,omitempty"`
}

// NewAuthEvent stamps a new event with a fresh id and the current time.
func NewAuthEvent(eventType AuthEventType, user *User, requestID string) *AuthEvent {
	return &AuthEvent{
		EventID:    uuid.New(),
		Type:       eventType,
		Email:      user.Email,
		UserID:     user.UserID.String(),
		OccurredAt: time.Now().UTC(),
		RequestID:  requestID,
	}
}
