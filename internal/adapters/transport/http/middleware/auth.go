package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vidtube/user-service/internal/domain/user/model"
	"github.com/vidtube/user-service/internal/domain/user/repo"
	"github.com/vidtube/user-service/internal/domain/user/token"
)

const userKey = "currentUser"

// RequireAccessToken authenticates the request from the accessToken cookie
// or an Authorization bearer header, loads the user, and binds it to the
// request context for downstream handlers.
func RequireAccessToken(codec token.Codec, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := accessTokenFrom(c)
		if raw == "" {
			unauthorized(c, "access token is required")
			return
		}

		claims, err := codec.ValidateAccessToken(raw)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}

		uid, err := uuid.Parse(claims.Subject)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}

		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			unauthorized(c, "invalid access token")
			return
		}

		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser returns the user bound by RequireAccessToken.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func accessTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  http.StatusUnauthorized,
		"message": msg,
		"success": false,
	})
}
