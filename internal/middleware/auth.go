package middleware

import (
	"net/http"
	"strings"

	jwtsvc "gigboard/internal/pkg/jwt"
	"gigboard/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth resolves the caller's capability from a Bearer token and puts
// account_id, role and party_id on the context. Everything downstream
// consumes identity as a yes/no capability check; no handler touches
// tokens directly.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("role", claims.Role)
		c.Set("party_id", claims.PartyID)

		c.Next()
	}
}
