package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodshare/foodshare/internal/tokens"
	"github.com/foodshare/foodshare/pkg/metrics"
)

// EmailKey is the gin context key carrying the guard-verified identity.
const EmailKey = "email"

// Verifier is the minimal interface the guard depends on.
type Verifier interface {
	Verify(raw string) (*tokens.Claims, error)
}

// RequireAuth returns a gin middleware that verifies Bearer tokens before the
// handler runs. A missing credential is 401; a presented-but-invalid one is
// 403. On success the verified email is set on the context.
func RequireAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AuthDenied.WithLabelValues("missing_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			metrics.AuthDenied.WithLabelValues("bad_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		claims, err := ver.Verify(token)
		if err != nil {
			metrics.AuthDenied.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
