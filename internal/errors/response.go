package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`   // error code, for frontend mapping
	Message string `json:"message"` // user-facing message
}

// RespondWithError writes the standard error payload
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shortcuts for the frequent cases

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Necesitás iniciar sesión"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func BadGateway(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadGateway, errorCode, message)
}

func Internal(c *gin.Context, message string) {
	if message == "" {
		message = "Algo salió mal, intentá de nuevo"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
