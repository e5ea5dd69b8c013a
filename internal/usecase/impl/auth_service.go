// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "apilogin/internal/delivery/context"
	"apilogin/internal/domain/entity"
	domainerrors "apilogin/internal/domain/errors"
	"apilogin/internal/domain/repository"
	"apilogin/internal/domain/service"
	"apilogin/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the form, hashes the password and creates the account
// only if the email is not taken yet.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) error {
	if input.Email == "" || input.Password == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "register")
	}

	gender := entity.Gender(input.Gender)
	if !gender.IsValid() {
		srv.log(ctx).Debug("Registration rejected", slog.String("email", input.Email), slog.String("gender", input.Gender))

		return errors.Wrap(domainerrors.ErrInvalidGender, "register")
	}
	if input.Password != input.ConfirmPassword {
		return errors.Wrap(domainerrors.ErrPasswordMismatch, "register")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrRegistrationFailed, "failed to hash password")
	}

	user := &entity.User{
		Email:        input.Email,
		UserID:       uuid.New(),
		FullName:     input.FullName,
		PasswordHash: hash,
		Height:       input.Height,
		Weight:       input.Weight,
		Age:          input.Age,
		Gender:       gender,
	}

	exists, err := srv.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		srv.log(ctx).Error("Failed to check existing user", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrRegistrationFailed, "failed to check existing user")
	}
	if exists {
		srv.log(ctx).Info("Registration rejected, email taken", slog.String("email", input.Email))

		return errors.Wrap(domainerrors.ErrUserAlreadyExists, "register")
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			srv.log(ctx).Info("Registration lost create race", slog.String("email", input.Email))

			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "register")
		}
		srv.log(ctx).Error("Failed to create user", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrRegistrationFailed, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.String("email", user.Email), slog.String("userID", user.UserID.String()))
	srv.publish(ctx, entity.AuthEventRegistered, user)

	return nil
}

// Login verifies the password, issues a session token and marks the account logged in.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "login")
	}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "login")
		}
		srv.log(ctx).Error("Failed to load user for login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrLoginFailed, "failed to load user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login failed, wrong password", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login")
	}

	token, err := srv.tokenService.GenerateToken(user.Email, user.UserID.String())
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrLoginFailed, "failed to issue token")
	}

	patch := entity.SessionPatch{IsLoggedIn: true, LastLogin: srv.now().UTC()}
	if err := srv.userRepo.UpdateSession(ctx, user.Email, patch); err != nil {
		srv.log(ctx).Error("Failed to record login", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrLoginFailed, "failed to record login")
	}
	user.IsLoggedIn = patch.IsLoggedIn
	user.LastLogin = &patch.LastLogin

	srv.log(ctx).Info("User logged in", slog.String("userID", user.UserID.String()))
	srv.publish(ctx, entity.AuthEventLoggedIn, user)

	return &usecase.LoginOutput{User: user, Token: token}, nil
}

// Logout marks the token's account logged out. The token itself stays valid
// until it expires, so repeating the call succeeds.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if input.Authorization == "" {
		return errors.Wrap(domainerrors.ErrMissingAuthorization, "logout")
	}

	claims, err := srv.tokenService.ValidateToken(bearerToken(input.Authorization))
	if err != nil {
		srv.log(ctx).Info("Logout rejected, invalid token", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrInvalidToken, "logout")
	}

	user, err := srv.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "logout")
		}
		srv.log(ctx).Error("Failed to load user for logout", slog.String("email", claims.Email), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrLogoutFailed, "failed to load user")
	}

	patch := entity.SessionPatch{IsLoggedIn: false, LastLogin: srv.now().UTC()}
	if err := srv.userRepo.UpdateSession(ctx, user.Email, patch); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "logout")
		}
		srv.log(ctx).Error("Failed to record logout", slog.String("email", user.Email), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrLogoutFailed, "failed to record logout")
	}

	srv.log(ctx).Info("User logged out", slog.String("userID", user.UserID.String()))
	srv.publish(ctx, entity.AuthEventLoggedOut, user)

	return nil
}

// publish never fails the operation; a lost event is only logged.
func (srv *authService) publish(ctx context.Context, eventType entity.AuthEventType, user *entity.User) {
	if srv.publisher == nil {
		return
	}

	event := entity.NewAuthEvent(eventType, user, deliverycontext.GetRequestIDFromContext(ctx))
	if err := srv.publisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event",
			slog.String("event_type", string(eventType)),
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}
}

// bearerToken returns the second whitespace-separated segment of the header.
// The scheme is not checked.
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return ""
	}

	return fields[1]
}
