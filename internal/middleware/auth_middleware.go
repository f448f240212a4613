package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/errors"
)

// Context keys for the authenticated identity
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	UserRoleKey = "user_role"
	TokenKey    = "session_token"
)

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the opaque bearer token against the session store.
// Expired or never-issued tokens are indistinguishable to the client.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Login required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, 401, errors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}
		token := parts[1]

		sess, err := m.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Error("Session lookup failed", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if sess == nil {
			log.Warn("Unknown or expired session token", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, 401, errors.AuthTokenExpired, "Session expired, please log in again")
			c.Abort()
			return
		}

		c.Set(UserIDKey, sess.UserID)
		c.Set(UsernameKey, sess.Username)
		c.Set(UserRoleKey, sess.Role)
		c.Set(TokenKey, token)

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetUserRole extracts the authenticated role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}

// GetSessionToken extracts the raw bearer token from context
func GetSessionToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}
