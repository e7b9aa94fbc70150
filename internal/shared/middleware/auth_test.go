package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkin-backend/pkg/jwt"
)

func setupProtectedRoute(m *jwt.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(m), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": c.GetString("role")})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	router := setupProtectedRoute(m)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, err := m.GenerateAccessToken("3e0c3c2e-0000-4000-8000-000000000001", "alice", "alice@example.com", "user")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "3e0c3c2e-0000-4000-8000-000000000001")
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := jwt.NewManager("other-secret", time.Hour)
		token, err := other.GenerateAccessToken("3e0c3c2e-0000-4000-8000-000000000001", "alice", "alice@example.com", "user")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", AuthMiddleware(m), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func(role string) *httptest.ResponseRecorder {
		token, err := m.GenerateAccessToken("3e0c3c2e-0000-4000-8000-000000000002", "root", "root@example.com", role)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("admin role passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, request("admin").Code)
	})

	t.Run("standard role is forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request("user").Code)
	})
}
