// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"apilogin/internal/delivery/api/response"
	deliverycontext "apilogin/internal/delivery/context"
	domainerrors "apilogin/internal/domain/errors"
	"apilogin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves register, login and logout
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// log returns the request-scoped logger, falling back to the handler's logger.
func (h *AuthHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
}

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required"`
	Password        string  `json:"password" validate:"required"`
	ConfirmPassword string  `json:"confirmPassword"`
	FullName        string  `json:"fullname"`
	Height          float64 `json:"height"`
	Weight          float64 `json:"weight"`
	Age             float64 `json:"age"`
	Gender          string  `json:"gender"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		h.log(c).Debug("Invalid register payload", slog.Any("error", err))

		return response.HandleAppError(c, domainerrors.ErrInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed)
	}

	err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FullName:        req.FullName,
		Height:          req.Height,
		Weight:          req.Weight,
		Age:             req.Age,
		Gender:          req.Gender,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		h.log(c).Debug("Invalid login payload", slog.Any("error", err))

		return response.HandleLoginError(c, domainerrors.ErrInvalidPayload)
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleLoginError(c, domainerrors.ErrValidationFailed)
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleLoginError(c, err)
	}

	return response.LoginSuccess(c, output.User, output.Token)
}

// Logout reads the token from the Authorization header; the body is ignored.
func (h *AuthHandler) Logout(c echo.Context) error {
	err := h.authUC.Logout(c.Request().Context(), &usecase.LogoutInput{
		Authorization: c.Request().Header.Get(echo.HeaderAuthorization),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Logged out successfully")
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
