package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elbuensabor/storefront-backend/internal/app/service"
	apperrors "github.com/elbuensabor/storefront-backend/internal/errors"
	"github.com/elbuensabor/storefront-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login signs the admin into the back-office
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Email o contraseña incorrectos")
			return
		}
		log.Error("Login failed", err, nil)
		apperrors.Internal(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Refresh exchanges a refresh token for a fresh pair
// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos enviados no son válidos")
		return
	}

	tokens, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "El token de actualización no es válido")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}
