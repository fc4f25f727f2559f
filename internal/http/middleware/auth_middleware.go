package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
)

// ContextUserKey is the gin context key holding the authenticated *domain.User.
const ContextUserKey = "user"

// AuthMiddleware validates the Bearer access token and loads the full user
// record into the request context. Deactivated accounts are rejected even
// when their token is still valid.
func AuthMiddleware(tokenSvc domain.TokenService, userRepo domain.UserRepository) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.ValidateAccessToken(tokenParts[1])
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case domain.ErrTokenInvalid, domain.ErrTokenMalformed:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token validation failed"})
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || user == nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	})
}

// CurrentUser retrieves the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	val, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
