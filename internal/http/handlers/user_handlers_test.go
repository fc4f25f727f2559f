package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
	"github.com/you/identitysvc/internal/http/middleware"
	"github.com/you/identitysvc/internal/mocks"
)

func newUserRouter(user *domain.User, phoneSvc domain.PhoneVerificationService, mailer domain.Mailer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandlers(phoneSvc, mailer)
	r := gin.New()
	inject := func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.ContextUserKey, user)
		}
	}
	r.GET("/user/data", inject, h.GetData)
	r.GET("/user/otp/sms", inject, h.SendSMSCode)
	r.POST("/user/otp/sms", inject, h.CheckSMSCode)
	r.POST("/user/contact", inject, h.Contact)
	return r
}

func TestGetDataProjection(t *testing.T) {
	user := &domain.User{
		ID:         1,
		Email:      "a@b.com",
		Num:        "+5511999999999",
		Verified:   true,
		Tokens:     42,
		DateJoined: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("selected fields only", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/data?fields=email,tokens", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, float64(42), body["tokens"])
		assert.NotContains(t, body, "verified")
		assert.NotContains(t, body, "num")
	})

	t.Run("no fields parameter returns everything", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/data", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		for _, field := range []string{"email", "tokens", "verified", "num", "date_joined"} {
			assert.Contains(t, body, field)
		}
	})

	t.Run("unknown field is a validation failure naming it", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/data?fields=email,password", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid field 'Fields': Unknown field 'password'.", decodeBody(t, w)["msg"])
	})
}

func TestSMSEndpoints(t *testing.T) {
	user := &domain.User{ID: 1, Email: "a@b.com"}

	t.Run("send 204", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/otp/sms?num=%2B5511999999999", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("invalid phone number 400", func(t *testing.T) {
		phoneSvc := mocks.NewMockPhoneVerificationService()
		phoneSvc.SendCodeFunc = func(ctx context.Context, userID uint, num string) error {
			return domain.ErrInvalidPhoneNumber
		}
		r := newUserRouter(user, phoneSvc, mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/otp/sms?num=garbage", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid phone number.", decodeBody(t, w)["msg"])
	})

	t.Run("already verified 400", func(t *testing.T) {
		phoneSvc := mocks.NewMockPhoneVerificationService()
		phoneSvc.SendCodeFunc = func(ctx context.Context, userID uint, num string) error {
			return domain.ErrUserAlreadyVerified
		}
		r := newUserRouter(user, phoneSvc, mocks.NewMockMailer())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/otp/sms?num=%2B5511999999999", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User already verified.", decodeBody(t, w)["msg"])
	})

	t.Run("wrong code 400", func(t *testing.T) {
		phoneSvc := mocks.NewMockPhoneVerificationService()
		phoneSvc.CheckCodeFunc = func(ctx context.Context, userID uint, num, code string) error {
			return domain.ErrInvalidSMSCode
		}
		r := newUserRouter(user, phoneSvc, mocks.NewMockMailer())
		w := postJSON(r, "/user/otp/sms", `{"num": "+5511999999999", "code": "000000"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid code.", decodeBody(t, w)["msg"])
	})

	t.Run("successful check 204", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := postJSON(r, "/user/otp/sms", `{"num": "+5511999999999", "code": "123456"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestContactEndpoint(t *testing.T) {
	user := &domain.User{ID: 1, Email: "a@b.com"}

	t.Run("relays message to operator", func(t *testing.T) {
		mailer := mocks.NewMockMailer()
		var gotFrom, gotSubject, gotMsg string
		mailer.SendToOperatorFunc = func(fromEmail, subject, msg string) error {
			gotFrom, gotSubject, gotMsg = fromEmail, subject, msg
			return nil
		}
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mailer)
		w := postJSON(r, "/user/contact", `{"subject": "Help", "message": "Something broke"}`)

		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "a@b.com", gotFrom)
		assert.Equal(t, "Help", gotSubject)
		assert.Equal(t, "Something broke", gotMsg)
	})

	t.Run("provider failure 500 with contract message", func(t *testing.T) {
		mailer := mocks.NewMockMailer()
		mailer.SendToOperatorFunc = func(fromEmail, subject, msg string) error {
			return errors.New("provider down")
		}
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mailer)
		w := postJSON(r, "/user/contact", `{"subject": "Help", "message": "Something broke"}`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Unexpected error, please try again later.", decodeBody(t, w)["msg"])
	})

	t.Run("missing subject is a validation failure", func(t *testing.T) {
		r := newUserRouter(user, mocks.NewMockPhoneVerificationService(), mocks.NewMockMailer())
		w := postJSON(r, "/user/contact", `{"message": "Something broke"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid field 'Subject': This field is required.", decodeBody(t, w)["msg"])
	})
}
