package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// CasbinMW wraps the casbin enforcer for role-based route authorization.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the authorization middleware. The subject is derived from
// the account flags loaded by AuthMiddleware; staff and superuser accounts
// carry elevated roles in the policy table.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		role := "role_user"
		switch {
		case user.IsSuperuser:
			role = "role_superuser"
		case user.IsStaff:
			role = "role_staff"
		}

		allowed, err := mw.enforcer.Enforce(role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			// Also consult the per-user subject so policies can grant access
			// to individual accounts.
			allowed, err = mw.enforcer.Enforce(fmt.Sprintf("user_%d", user.ID), c.Request.URL.Path, c.Request.Method)
			if err != nil || !allowed {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
				c.Abort()
				return
			}
		}

		c.Next()
	})
}
