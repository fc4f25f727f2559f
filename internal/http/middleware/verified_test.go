package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
)

func TestRequireVerified(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(user *domain.User) *gin.Engine {
		r := gin.New()
		r.GET("/orders", func(c *gin.Context) {
			if user != nil {
				c.Set(ContextUserKey, user)
			}
		}, RequireVerified(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	t.Run("verified account passes", func(t *testing.T) {
		r := newRouter(&domain.User{ID: 1, Verified: true})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unverified account blocked with contract message", func(t *testing.T) {
		r := newRouter(&domain.User{ID: 1, Verified: false})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
		require.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "User account must be verified to make this action.", body["msg"])
	})

	t.Run("missing user rejected", func(t *testing.T) {
		r := newRouter(nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
