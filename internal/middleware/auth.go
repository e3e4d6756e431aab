package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/followup-tasks/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAPIKey is returned for a missing or mismatched key.
var ErrInvalidAPIKey = apierrors.Unauthenticated("Invalid API key")

// RequireAPIKey checks the caller's key against a bcrypt hash. The key is
// read from the apikey header, falling back to an Authorization bearer token.
// An empty hash disables the check.
func RequireAPIKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hash == "" {
			c.Next()
			return
		}

		key := APIKey(c)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			apierrors.Respond(c, ErrInvalidAPIKey)
			c.Abort()
			return
		}

		c.Next()
	}
}

// APIKey extracts the presented key from the request
func APIKey(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("apikey")); key != "" {
		return key
	}

	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
