package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratforsr-sys/bokningsstatistik/internal/config"
	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
	"github.com/stratforsr-sys/bokningsstatistik/mocks"
)

func authConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "test",
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Maria Lindqvist",
		Email:        "maria@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	user := activeUser(t, "correct-password")
	user.IsActive = false
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestValidateToken_RejectsRefreshTokenAsAccess(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, authConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "correct-password",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}
