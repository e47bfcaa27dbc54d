package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"versepin/internal/config"
	"versepin/internal/domain"
	"versepin/internal/service"
)

func testAuthService(t *testing.T, password string) service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return service.NewAuthService(
		config.AuthConfig{Username: "operator", PasswordHash: string(hash)},
		config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
			Issuer:             "versepin-test",
		},
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "battery-staple",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "intruder",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_NoHashConfigured(t *testing.T) {
	svc := service.NewAuthService(
		config.AuthConfig{Username: "operator", PasswordHash: ""},
		config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
	)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "anything",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_AccessOnly(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)

	// Refresh tokens must not pass access-token validation.
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// An access token cannot be used as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	svc := testAuthService(t, "correct-horse")

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "operator",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
