package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wavechat/wavechat-backend/internal/auth"
)

// RequireAuth validates the signed token from the jwt cookie and stores the
// caller's user id in the context. A missing cookie is 401; a token that
// fails verification (bad signature, expired) is 403.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		userID, err := auth.VerifyToken(secret, token)
		if err != nil {
			log.Printf("[auth] token verification failed: %v", err)
			c.JSON(http.StatusForbidden, gin.H{"error": "Token is invalid"})
			c.Abort()
			return
		}

		c.Set(auth.CtxUserID, userID)
		c.Next()
	}
}
