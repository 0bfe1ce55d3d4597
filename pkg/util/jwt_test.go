package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          string
		secret        string
		accessExpiry  time.Duration
		refreshExpiry time.Duration
		wantErr       bool
	}{
		{
			name:          "Valid token generation",
			email:         "admin@elbuensabor.com",
			role:          "admin",
			secret:        testSecret,
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 7 * 24 * time.Hour,
			wantErr:       false,
		},
		{
			name:          "Empty secret",
			email:         "admin@elbuensabor.com",
			role:          "admin",
			secret:        "",
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 7 * 24 * time.Hour,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := GenerateTokenPair(
				tt.email,
				tt.role,
				tt.secret,
				tt.accessExpiry,
				tt.refreshExpiry,
			)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tokens)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		})
	}
}

func TestValidateToken(t *testing.T) {
	tokens, err := GenerateTokenPair("admin@elbuensabor.com", "admin", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(tokens.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@elbuensabor.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@elbuensabor.com", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens, err := GenerateTokenPair("admin@elbuensabor.com", "admin", testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	tokens, err := GenerateTokenPair("admin@elbuensabor.com", "admin", testSecret, -time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokens.AccessToken, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
