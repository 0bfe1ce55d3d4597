package service

import (
	"errors"

	"github.com/elbuensabor/storefront-backend/config"
	"github.com/elbuensabor/storefront-backend/pkg/logger"
	"github.com/elbuensabor/storefront-backend/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const adminRole = "admin"

// AuthService signs administrators into the back-office console.
type AuthService interface {
	Login(email, password string) (*util.TokenPair, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
}

type authService struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
}

func NewAuthService(admin config.AdminConfig, jwt config.JWTConfig) AuthService {
	return &authService{admin: admin, jwt: jwt}
}

func (s *authService) Login(email, password string) (*util.TokenPair, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if email != s.admin.Email || s.admin.PasswordHash == "" {
		logger.Warn("Login rejected", map[string]interface{}{"email": email})
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(s.admin.PasswordHash, password) {
		logger.Warn("Login rejected", map[string]interface{}{"email": email})
		return nil, ErrInvalidCredentials
	}

	pair, err := util.GenerateTokenPair(email, adminRole, s.jwt.Secret, s.jwt.AccessTokenExpiry, s.jwt.RefreshTokenExpiry)
	if err != nil {
		logger.Error("Failed to issue tokens", err, map[string]interface{}{"email": email})
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{"email": email})
	return pair, nil
}

func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwt.Secret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.Email != s.admin.Email || claims.Role != adminRole {
		return nil, ErrInvalidCredentials
	}
	return util.GenerateTokenPair(claims.Email, claims.Role, s.jwt.Secret, s.jwt.AccessTokenExpiry, s.jwt.RefreshTokenExpiry)
}
