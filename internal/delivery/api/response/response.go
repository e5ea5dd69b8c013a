// Package response renders the JSON bodies returned by the API.
package response

import (
	"net/http"

	"apilogin/internal/domain/entity"
	domainerrors "apilogin/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageResponse is the body of every non-login response.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the envelope returned by /login, on success and on failure.
type LoginResponse struct {
	Error       bool         `json:"error"`
	Message     string       `json:"message"`
	LoginResult *LoginResult `json:"loginResult,omitempty"`
}

// LoginResult is the account summary returned by a successful login. It never
// carries the password digest.
type LoginResult struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Age    float64 `json:"age"`
	Gender string  `json:"gender"`
	Token  string  `json:"token"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// LoginSuccess renders the login envelope for an authenticated user.
func LoginSuccess(c echo.Context, user *entity.User, token string) error {
	return c.JSON(http.StatusOK, LoginResponse{
		Error:   false,
		Message: "Login successful",
		LoginResult: &LoginResult{
			UserID: user.UserID.String(),
			Name:   user.FullName,
			Email:  user.Email,
			Height: user.Height,
			Weight: user.Weight,
			Age:    user.Age,
			Gender: user.Gender.String(),
			Token:  token,
		},
	})
}

// LoginError renders a failed login as {"error": true, "message": ...}.
func LoginError(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, LoginResponse{Error: true, Message: message})
}

// HandleAppError renders an AppError as {"message": ...}. Any other error is
// returned for the centralized error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return Message(c, appErr.HTTPCode(), appErr.Message())
	}

	return errors.WithStack(err)
}

// HandleLoginError is HandleAppError for the login envelope.
func HandleLoginError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return LoginError(c, appErr.HTTPCode(), appErr.Message())
	}

	return errors.WithStack(err)
}
