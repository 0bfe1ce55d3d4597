package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/pkg/util"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	t.Helper()
	hash, err := util.HashPassword("secreto123")
	require.NoError(t, err)

	return NewAuthService(
		config.AdminConfig{
			Email:        "admin@elbuensabor.com",
			PasswordHash: hash,
		},
		config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupAuthServiceTest(t)

	tokens, err := svc.Login("admin@elbuensabor.com", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@elbuensabor.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("admin@elbuensabor.com", "incorrecta")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("otro@example.com", "secreto123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, err := svc.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_NoHashConfigured(t *testing.T) {
	svc := NewAuthService(
		config.AdminConfig{Email: "admin@elbuensabor.com"},
		config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
	)

	_, err := svc.Login("admin@elbuensabor.com", "cualquiera")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	svc := setupAuthServiceTest(t)

	tokens, err := svc.Login("admin@elbuensabor.com", "secreto123")
	require.NoError(t, err)

	fresh, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
