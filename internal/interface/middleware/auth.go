package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-events/internal/application"
	"github.com/oksasatya/campus-events/pkg/helpers"
	"github.com/oksasatya/campus-events/pkg/response"
)

// Context keys set by Authenticate.
const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// Authenticate validates the bearer token in the Authorization header and
// sets userID and userRole in the Gin context on success.
func Authenticate(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "Unauthorized: No token provided", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "Unauthorized: Invalid token", err.Error())
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminChecker reports whether a user currently holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin must run after Authenticate. The role is read from the user
// record on every request; the token's role claim is not trusted.
func RequireAdmin(users AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			response.Error[any](c, http.StatusUnauthorized, "Unauthorized: No token provided", nil)
			return
		}
		ok, err := users.IsAdmin(c.Request.Context(), uid)
		if err != nil && !errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusInternalServerError, "Internal server error", err.Error())
			return
		}
		if !ok {
			response.Error[any](c, http.StatusForbidden, "Unauthorized. Admin access required", nil)
			return
		}
		c.Next()
	}
}
