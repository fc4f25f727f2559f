package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
)

// RequireVerified rejects requests from accounts that have not completed
// phone verification. Must run after AuthMiddleware.
func RequireVerified() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		if !user.Verified {
			c.JSON(http.StatusForbidden, gin.H{"msg": domain.ErrUserNotVerified.Error()})
			c.Abort()
			return
		}
		c.Next()
	})
}
