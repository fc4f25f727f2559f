package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
	"github.com/you/identitysvc/internal/http/middleware"
)

// UserHandlers serves the account endpoints: data projection, phone
// verification and the contact relay.
type UserHandlers struct {
	phoneSvc domain.PhoneVerificationService
	mailer   domain.Mailer
}

func NewUserHandlers(phoneSvc domain.PhoneVerificationService, mailer domain.Mailer) *UserHandlers {
	return &UserHandlers{phoneSvc: phoneSvc, mailer: mailer}
}

type SendSMSRequest struct {
	Num string `form:"num" binding:"required"`
}

type CheckSMSRequest struct {
	Num  string `json:"num" binding:"required"`
	Code string `json:"code" binding:"required"`
}

type ContactRequest struct {
	Subject string `json:"subject" binding:"required,max=120"`
	Message string `json:"message" binding:"required"`
}

var userLabels = map[string]string{
	"Num":     "Phone",
	"Code":    "Code",
	"Subject": "Subject",
	"Message": "Message",
	"Fields":  "Fields",
}

// userDataFields is the closed set of fields the projection endpoint serves.
var userDataFields = map[string]struct{}{
	"email":       {},
	"tokens":      {},
	"verified":    {},
	"num":         {},
	"date_joined": {},
}

// GetData returns the requested projection of the caller's account. An
// empty fields parameter returns every projectable field.
func (h *UserHandlers) GetData(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	fields := []string{"email", "tokens", "verified", "num", "date_joined"}
	if raw := c.Query("fields"); raw != "" {
		fields = strings.Split(raw, ",")
	}

	data := gin.H{}
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if _, known := userDataFields[field]; !known {
			respondFieldError(c, "Fields", "Unknown field '"+field+"'.")
			return
		}
		switch field {
		case "email":
			data["email"] = user.Email
		case "tokens":
			data["tokens"] = user.Tokens
		case "verified":
			data["verified"] = user.Verified
		case "num":
			data["num"] = user.Num
		case "date_joined":
			data["date_joined"] = user.DateJoined
		}
	}

	c.JSON(http.StatusOK, data)
}

// SendSMSCode starts phone verification for the caller's account.
func (h *UserHandlers) SendSMSCode(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	var req SendSMSRequest
	if !bindQuery(c, &req, userLabels) {
		return
	}

	if err := h.phoneSvc.SendCode(c.Request.Context(), user.ID, req.Num); err != nil {
		switch {
		case errors.Is(err, domain.ErrNumAlreadyVerified),
			errors.Is(err, domain.ErrUserAlreadyVerified),
			errors.Is(err, domain.ErrInvalidPhoneNumber):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			log.Printf("sms send failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckSMSCode completes phone verification, storing the number and
// flipping the verified flag.
func (h *UserHandlers) CheckSMSCode(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	var req CheckSMSRequest
	if !bindJSON(c, &req, userLabels) {
		return
	}

	if err := h.phoneSvc.CheckCode(c.Request.Context(), user.ID, req.Num, req.Code); err != nil {
		switch {
		case errors.Is(err, domain.ErrNumAlreadyVerified),
			errors.Is(err, domain.ErrUserAlreadyVerified),
			errors.Is(err, domain.ErrInvalidSMSCode):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			log.Printf("sms check failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Contact relays a message from the caller to the operator address.
func (h *UserHandlers) Contact(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	var req ContactRequest
	if !bindJSON(c, &req, userLabels) {
		return
	}

	if err := h.mailer.SendToOperator(user.Email, req.Subject, req.Message); err != nil {
		log.Printf("contact relay failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Unexpected error, please try again later."})
		return
	}

	c.Status(http.StatusNoContent)
}
