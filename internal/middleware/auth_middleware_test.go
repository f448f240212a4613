package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
	"github.com/lamnt/koctrack-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiddlewareTest(t *testing.T) (*gin.Engine, *AuthMiddleware, session.Store) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	sessions := session.NewMemoryStore(12 * time.Hour)
	authService := service.NewAuthService(repository.NewUserRepository(testDB), sessions)

	return gin.New(), NewAuthMiddleware(authService), sessions
}

func issueTestSession(t *testing.T, sessions session.Store, token string) {
	err := sessions.Put(t.Context(), token, session.Session{
		UserID:   "user-1",
		Username: "admin",
		Role:     model.RoleAdmin,
		IssuedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	router, authMiddleware, sessions := setupMiddlewareTest(t)
	issueTestSession(t, sessions, "valid-token")

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		token, _ := GetSessionToken(c)

		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"role":    role,
			"token":   token,
		})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "valid-token")
}

func TestAuthMiddleware_Authenticate_NoHeader(t *testing.T) {
	router, authMiddleware, _ := setupMiddlewareTest(t)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_UNAUTHORIZED")
}

func TestAuthMiddleware_Authenticate_InvalidFormat(t *testing.T) {
	router, authMiddleware, _ := setupMiddlewareTest(t)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no scheme", "some-token"},
		{"wrong scheme", "Basic some-token"},
		{"too many parts", "Bearer a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
		})
	}
}

func TestAuthMiddleware_Authenticate_UnknownToken(t *testing.T) {
	router, authMiddleware, _ := setupMiddlewareTest(t)

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer never-issued")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestAuthMiddleware_Authenticate_RevokedToken(t *testing.T) {
	router, authMiddleware, sessions := setupMiddlewareTest(t)
	issueTestSession(t, sessions, "revoked-token")
	require.NoError(t, sessions.Delete(t.Context(), "revoked-token"))

	router.GET("/test", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
