package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavechat/wavechat-backend/internal/auth"
	authmw "github.com/wavechat/wavechat-backend/internal/auth/middleware"
	"github.com/wavechat/wavechat-backend/internal/users"
)

const testSecret = "test-secret"

func setupAccountRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	router := gin.New()
	handler := New(users.NewRepo(client), testSecret, time.Hour)
	handler.Register(router.Group("/api/v1/auth"), authmw.RequireAuth(testSecret))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req, err := http.NewRequest("POST", path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func tokenCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	t.Fatal("jwt cookie not set")
	return nil
}

func TestSignup(t *testing.T) {
	router := setupAccountRouter(t)

	rr := postJSON(t, router, "/api/v1/auth/signup", gin.H{"email": "alice@x.com", "password": "hunter2"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	cookie := tokenCookie(t, rr)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var body struct {
		User users.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "alice@x.com", body.User.Email)
	assert.NotEmpty(t, body.User.ID)
	assert.NotContains(t, rr.Body.String(), "hunter2", "password must never be serialized")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/signup", gin.H{"email": "alice@x.com", "password": "other"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/signup", gin.H{"email": "bob@x.com"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	router := setupAccountRouter(t)

	rr := postJSON(t, router, "/api/v1/auth/signup", gin.H{"email": "alice@x.com", "password": "hunter2"})
	require.Equal(t, http.StatusCreated, rr.Code)

	t.Run("correct password logs in and sets the cookie", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/login", gin.H{"email": "alice@x.com", "password": "hunter2"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, tokenCookie(t, rr).Value)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/login", gin.H{"email": "alice@x.com", "password": "wrong"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/login", gin.H{"email": "nobody@x.com", "password": "hunter2"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestProfileRoutes(t *testing.T) {
	router := setupAccountRouter(t)

	rr := postJSON(t, router, "/api/v1/auth/signup", gin.H{"email": "alice@x.com", "password": "hunter2"})
	require.Equal(t, http.StatusCreated, rr.Code)
	cookie := tokenCookie(t, rr)

	t.Run("user info requires the cookie", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/api/v1/auth/user-info", nil)
		require.NoError(t, err)

		unauth := httptest.NewRecorder()
		router.ServeHTTP(unauth, req)
		assert.Equal(t, http.StatusUnauthorized, unauth.Code)

		req, err = http.NewRequest("GET", "/api/v1/auth/user-info", nil)
		require.NoError(t, err)
		req.AddCookie(cookie)

		authed := httptest.NewRecorder()
		router.ServeHTTP(authed, req)
		assert.Equal(t, http.StatusOK, authed.Code)
		assert.Contains(t, authed.Body.String(), "alice@x.com")
	})

	t.Run("update profile persists display fields", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/update-profile", gin.H{
			"firstName": "Alice",
			"lastName":  "Archer",
			"color":     2,
		}, cookie)
		assert.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			User users.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Alice", body.User.FirstName)
		assert.True(t, body.User.ProfileSetup)
	})

	t.Run("missing names are a bad request", func(t *testing.T) {
		rr := postJSON(t, router, "/api/v1/auth/update-profile", gin.H{"firstName": "Alice"}, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
