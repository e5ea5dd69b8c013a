package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	deliverycontext "apilogin/internal/delivery/context"
	"apilogin/internal/domain/entity"
	domainerrors "apilogin/internal/domain/errors"
	"apilogin/internal/domain/repository"
	"apilogin/internal/domain/service"
	mockRepo "apilogin/internal/mocks/repository"
	mockSvc "apilogin/internal/mocks/service"
	"apilogin/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Publisher:    publisher,
		Logger:       logger,
	})
	srv.(*authService).now = func() time.Time { return fixedNow }

	return authServiceFixtures{
		service:      srv,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		publisher:    publisher,
	}
}

func validRegisterInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "John Doe",
		Height:          180,
		Weight:          75.5,
		Age:             30,
		Gender:          "man",
	}
}

func storedUser() *entity.User {
	return &entity.User{
		Email:        "john@example.com",
		UserID:       uuid.MustParse("5f1c7c1e-8a43-4f0e-9a55-2b1d9a1c0e11"),
		FullName:     "John Doe",
		PasswordHash: "hashed_password",
		Height:       180,
		Weight:       75.5,
		Age:          30,
		Gender:       entity.GenderMan,
	}
}

func assertAppError(t *testing.T, err error, want *domainerrors.BaseError) {
	t.Helper()

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, want.ErrorCode(), appErr.ErrorCode())
	assert.Equal(t, want.HTTPCode(), appErr.HTTPCode())
	assert.Equal(t, want.Message(), appErr.Message())
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-1")
	input := validRegisterInput()

	var created *entity.User
	fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "john@example.com").Return(false, nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) { created = user }).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.MatchedBy(func(e *entity.AuthEvent) bool {
			return e.Type == entity.AuthEventRegistered && e.Email == "john@example.com" && e.RequestID == "req-1"
		})).
		Return(nil)

	err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "john@example.com", created.Email)
	assert.Equal(t, "hashed_password", created.PasswordHash)
	assert.Equal(t, "John Doe", created.FullName)
	assert.Equal(t, entity.GenderMan, created.Gender)
	assert.Equal(t, 75.5, created.Weight)
	assert.NotEqual(t, uuid.Nil, created.UserID)
	assert.Equal(t, uuid.Version(4), created.UserID.Version())
	assert.False(t, created.IsLoggedIn)
	assert.Nil(t, created.LastLogin)
}

func TestAuthService_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.RegisterInput)
		want   *domainerrors.BaseError
	}{
		{
			name:   "missing email",
			mutate: func(in *usecase.RegisterInput) { in.Email = "" },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "missing password",
			mutate: func(in *usecase.RegisterInput) { in.Password = "" },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "invalid gender",
			mutate: func(in *usecase.RegisterInput) { in.Gender = "other" },
			want:   domainerrors.ErrInvalidGender,
		},
		{
			name:   "gender is case sensitive",
			mutate: func(in *usecase.RegisterInput) { in.Gender = "Man" },
			want:   domainerrors.ErrInvalidGender,
		},
		{
			name: "gender checked before password match",
			mutate: func(in *usecase.RegisterInput) {
				in.Gender = "woman"
				in.ConfirmPassword = "different"
			},
			want: domainerrors.ErrInvalidGender,
		},
		{
			name:   "password mismatch",
			mutate: func(in *usecase.RegisterInput) { in.ConfirmPassword = "secret124" },
			want:   domainerrors.ErrPasswordMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			input := validRegisterInput()
			tt.mutate(input)

			err := fx.service.Register(context.Background(), input)

			assertAppError(t, err, tt.want)
		})
	}
}

func TestAuthService_Register_UserAlreadyExists(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "john@example.com").Return(true, nil)

	err := fx.service.Register(ctx, validRegisterInput())

	assertAppError(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_LostCreateRace(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().ExistsByEmail(ctx, "john@example.com").Return(false, nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrUserAlreadyExists)

	err := fx.service.Register(ctx, validRegisterInput())

	assertAppError(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_InternalFailures(t *testing.T) {
	storeErr := errors.New("store unavailable")

	t.Run("hash failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.hasher.EXPECT().Hash("secret123").Return("", errors.New("bcrypt"))

		err := fx.service.Register(context.Background(), validRegisterInput())

		assertAppError(t, err, domainerrors.ErrRegistrationFailed)
	})

	t.Run("existence check failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
		fx.userRepo.EXPECT().ExistsByEmail(mock.Anything, "john@example.com").Return(false, storeErr)

		err := fx.service.Register(context.Background(), validRegisterInput())

		assertAppError(t, err, domainerrors.ErrRegistrationFailed)
		assert.NotContains(t, err.Error(), "store unavailable")
	})

	t.Run("create failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
		fx.userRepo.EXPECT().ExistsByEmail(mock.Anything, "john@example.com").Return(false, nil)
		fx.userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(storeErr)

		err := fx.service.Register(context.Background(), validRegisterInput())

		assertAppError(t, err, domainerrors.ErrRegistrationFailed)
	})
}

func TestAuthService_Register_PublishFailureIgnored(t *testing.T) {
	fx := createTestAuthService(t)

	fx.hasher.EXPECT().Hash("secret123").Return("hashed_password", nil)
	fx.userRepo.EXPECT().ExistsByEmail(mock.Anything, "john@example.com").Return(false, nil)
	fx.userRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAuthEvent(mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NoError(t, fx.service.Register(context.Background(), validRegisterInput()))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := storedUser()

	fx.userRepo.EXPECT().FindByEmail(ctx, "john@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("secret123", "hashed_password").Return(true)
	fx.tokenService.EXPECT().GenerateToken("john@example.com", user.UserID.String()).Return("signed.jwt.token", nil)
	fx.userRepo.EXPECT().
		UpdateSession(ctx, "john@example.com", entity.SessionPatch{IsLoggedIn: true, LastLogin: fixedNow}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.MatchedBy(func(e *entity.AuthEvent) bool {
			return e.Type == entity.AuthEventLoggedIn && e.UserID == user.UserID.String()
		})).
		Return(nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "john@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", out.Token)
	assert.Equal(t, user.UserID, out.User.UserID)
	assert.True(t, out.User.IsLoggedIn)
	require.NotNil(t, out.User.LastLogin)
	assert.Equal(t, fixedNow, *out.User.LastLogin)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "john@example.com"})

	assertAppError(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	fx := createTestAuthService(t)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "ghost@example.com", Password: "x"})

	assert.Nil(t, out)
	assertAppError(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "john@example.com").Return(storedUser(), nil)
	fx.hasher.EXPECT().Check("wrong", "hashed_password").Return(false)

	out, err := fx.service.Login(context.Background(), &usecase.LoginInput{Email: "john@example.com", Password: "wrong"})

	assert.Nil(t, out)
	assertAppError(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InternalFailures(t *testing.T) {
	storeErr := errors.New("store unavailable")
	input := &usecase.LoginInput{Email: "john@example.com", Password: "secret123"}

	t.Run("find failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "john@example.com").Return(nil, storeErr)

		_, err := fx.service.Login(context.Background(), input)

		assertAppError(t, err, domainerrors.ErrLoginFailed)
	})

	t.Run("token failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "john@example.com").Return(storedUser(), nil)
		fx.hasher.EXPECT().Check("secret123", "hashed_password").Return(true)
		fx.tokenService.EXPECT().GenerateToken(mock.Anything, mock.Anything).Return("", errors.New("sign"))

		_, err := fx.service.Login(context.Background(), input)

		assertAppError(t, err, domainerrors.ErrLoginFailed)
	})

	t.Run("session update failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByEmail(mock.Anything, "john@example.com").Return(storedUser(), nil)
		fx.hasher.EXPECT().Check("secret123", "hashed_password").Return(true)
		fx.tokenService.EXPECT().GenerateToken(mock.Anything, mock.Anything).Return("tok", nil)
		fx.userRepo.EXPECT().UpdateSession(mock.Anything, "john@example.com", mock.Anything).Return(storeErr)

		_, err := fx.service.Login(context.Background(), input)

		assertAppError(t, err, domainerrors.ErrLoginFailed)
	})
}

func TestAuthService_Logout_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := storedUser()

	fx.tokenService.EXPECT().ValidateToken("signed.jwt.token").Return(&service.Claims{Email: user.Email, UserID: user.UserID.String()}, nil)
	fx.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fx.userRepo.EXPECT().
		UpdateSession(ctx, user.Email, entity.SessionPatch{IsLoggedIn: false, LastLogin: fixedNow}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishAuthEvent(ctx, mock.MatchedBy(func(e *entity.AuthEvent) bool { return e.Type == entity.AuthEventLoggedOut })).
		Return(nil)

	err := fx.service.Logout(ctx, &usecase.LogoutInput{Authorization: "Bearer signed.jwt.token"})

	assert.NoError(t, err)
}

func TestAuthService_Logout_SchemeNotChecked(t *testing.T) {
	fx := createTestAuthService(t)
	user := storedUser()

	fx.tokenService.EXPECT().ValidateToken("tok").Return(&service.Claims{Email: user.Email}, nil)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(user, nil)
	fx.userRepo.EXPECT().UpdateSession(mock.Anything, user.Email, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishAuthEvent(mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, fx.service.Logout(context.Background(), &usecase.LogoutInput{Authorization: "Token   tok"}))
}

func TestAuthService_Logout_MissingHeader(t *testing.T) {
	fx := createTestAuthService(t)

	err := fx.service.Logout(context.Background(), &usecase.LogoutInput{})

	assertAppError(t, err, domainerrors.ErrMissingAuthorization)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
	}{
		{name: "bad signature", header: "Bearer forged", token: "forged"},
		{name: "no second segment", header: "Bearer", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			fx.tokenService.EXPECT().ValidateToken(tt.token).Return(nil, errors.New("invalid"))

			err := fx.service.Logout(context.Background(), &usecase.LogoutInput{Authorization: tt.header})

			assertAppError(t, err, domainerrors.ErrInvalidToken)
		})
	}
}

func TestAuthService_Logout_UserNotFound(t *testing.T) {
	fx := createTestAuthService(t)
	fx.tokenService.EXPECT().ValidateToken("tok").Return(&service.Claims{Email: "gone@example.com"}, nil)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "gone@example.com").Return(nil, repository.ErrUserNotFound)

	err := fx.service.Logout(context.Background(), &usecase.LogoutInput{Authorization: "Bearer tok"})

	assertAppError(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Logout_StoreFailure(t *testing.T) {
	fx := createTestAuthService(t)
	fx.tokenService.EXPECT().ValidateToken("tok").Return(&service.Claims{Email: "john@example.com"}, nil)
	fx.userRepo.EXPECT().FindByEmail(mock.Anything, "john@example.com").Return(nil, errors.New("timeout"))

	err := fx.service.Logout(context.Background(), &usecase.LogoutInput{Authorization: "Bearer tok"})

	assertAppError(t, err, domainerrors.ErrLogoutFailed)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("  Bearer\tabc  extra"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}
