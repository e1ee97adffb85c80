package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workrec/workhour-api/internal/constants"
	"github.com/workrec/workhour-api/internal/response"
	"github.com/workrec/workhour-api/internal/token"
)

// RequireAuth validates the bearer token and injects the session identity
// into the request context. Auth failures are normalized to the code-99
// envelope so the client purges its token and redirects to login.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) < 2 || parts[0] != "Bearer" {
			response.LoginExpired(c)
			c.Abort()
			return
		}

		session, err := tokens.Verify(parts[1])
		if err != nil {
			response.LoginExpired(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, session.UserID)
		c.Set(constants.ContextKeyOrgID, session.OrgID)
		c.Set(constants.ContextKeyPhone, session.Phone)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	v, ok := userID.(uint64)
	return v, ok
}

// GetOrgID retrieves the current organization ID from context. Zero means the
// token predates any org membership.
func GetOrgID(c *gin.Context) uint64 {
	orgID, exists := c.Get(constants.ContextKeyOrgID)
	if !exists {
		return 0
	}

	v, _ := orgID.(uint64)
	return v
}
