package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys under which the middleware stores the authenticated identity.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// Verifier validates a session token and returns the identity it encodes.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token and
// restricts access to authenticated users only. A missing token yields 401
// and a failed verification 403, with a generic message in both cases.
func AuthRequired(tokens Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature, expiry and shape
		identity, err := tokens.Verify(tokenStr)
		if err != nil {
			// 失敗理由はログにのみ残し、クライアントには公開しない
			slog.Warn("token verification failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid Token"})
			return
		}

		// 3. Attach the decoded identity for downstream owner-scoped queries
		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextEmail, identity.Email)

		// 4. Pass control to the next handler
		c.Next()
	}
}

// IdentityFromContext returns the user ID the middleware stored on the context.
// Handlers must take the owner ID from here, never from client input.
func IdentityFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
