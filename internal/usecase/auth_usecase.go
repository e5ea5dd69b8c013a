// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"apilogin/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput carries the registration form. Gender is validated by the use case.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
	Height          float64
	Weight          float64
	Age             float64
	Gender          string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// LogoutInput carries the raw Authorization header value.
type LogoutInput struct {
	Authorization string
}

// --- Output DTOs ---

// LoginOutput is the account after login together with its session token.
type LoginOutput struct {
	User  *entity.User
	Token string
}

// AuthUsecase is the account lifecycle: register, login and logout.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) error
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
}
