package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
	"github.com/you/identitysvc/internal/mocks"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(tokenSvc domain.TokenService, userRepo domain.UserRepository) *gin.Engine {
		r := gin.New()
		r.GET("/me", AuthMiddleware(tokenSvc, userRepo), func(c *gin.Context) {
			user, ok := CurrentUser(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"email": user.Email})
		})
		return r
	}

	t.Run("valid token loads the account", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 1, Email: "a@b.com", TokenType: "access"}, nil
		}
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Email: "a@b.com", IsActive: true}, nil
		}

		r := newRouter(tokenSvc, userRepo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a@b.com")
	})

	t.Run("missing header rejected", func(t *testing.T) {
		r := newRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := newRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		r := newRouter(mocks.NewMockTokenService(), mocks.NewMockUserRepository())
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated account rejected despite valid token", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 1, Email: "a@b.com", TokenType: "access"}, nil
		}
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: id, Email: "a@b.com", IsActive: false}, nil
		}

		r := newRouter(tokenSvc, userRepo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer sometoken")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
