package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavechat/wavechat-backend/internal/auth"
)

const testSecret = "test-secret"

func setupProtectedRoute(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/whoami", RequireAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": auth.UserID(c)})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, token string, withCookie bool) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", "/whoami", nil)
	require.NoError(t, err)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRequireAuth(t *testing.T) {
	router := setupProtectedRoute(t)

	t.Run("valid token passes the user id through", func(t *testing.T) {
		token, err := auth.IssueToken(testSecret, "user-123", time.Hour)
		require.NoError(t, err)

		rr := doRequest(t, router, token, true)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "user-123")
	})

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		rr := doRequest(t, router, "", false)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Unauthorized")
	})

	t.Run("garbage token is forbidden", func(t *testing.T) {
		rr := doRequest(t, router, "not-a-token", true)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token is invalid")
	})

	t.Run("expired token is forbidden", func(t *testing.T) {
		token, err := auth.IssueToken(testSecret, "user-123", -time.Hour)
		require.NoError(t, err)

		rr := doRequest(t, router, token, true)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("token signed with another secret is forbidden", func(t *testing.T) {
		token, err := auth.IssueToken("other-secret", "user-123", time.Hour)
		require.NoError(t, err)

		rr := doRequest(t, router, token, true)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
