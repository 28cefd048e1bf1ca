package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireEmailDomain rejects requests whose authenticated principal's email
// does not end with the given suffix. Must run after RequireAuth.
func RequireEmailDomain(suffix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(CtxEmail)
		if !strings.HasSuffix(email, suffix) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}
