package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	customErrors "github.com/vidtube/user-service/internal/domain/user/errors"
)

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"data":    data,
		"message": message,
		"success": true,
	})
}

// respondError converts a service error into the failure envelope. Internal
// detail never leaks: anything outside the taxonomy collapses to a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		failure(c, http.StatusBadRequest, err.Error())
	case customErrors.IsInvalidCredentials(err):
		failure(c, http.StatusUnauthorized, "invalid credentials")
	case customErrors.IsInvalidToken(err):
		failure(c, http.StatusUnauthorized, "invalid token")
	case customErrors.IsNotFound(err):
		failure(c, http.StatusNotFound, "not found")
	case customErrors.IsAlreadyExists(err):
		failure(c, http.StatusConflict, "a user already exists with the same username or email")
	default:
		_ = c.Error(err)
		failure(c, http.StatusInternalServerError, "internal server error")
	}
}

func failure(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"success": false,
	})
}
