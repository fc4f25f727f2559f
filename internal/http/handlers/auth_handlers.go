package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/domain"
)

// AuthHandlers serves the signup, Google and password-reset endpoints.
type AuthHandlers struct {
	authSvc  domain.AuthService
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

func NewAuthHandlers(authSvc domain.AuthService, tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, tokenSvc: tokenSvc, userRepo: userRepo}
}

type ContinueWithEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type OTPCheckRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	RegisterType string `json:"register_type" binding:"required,oneof=email google"`
	OTP          string `json:"otp"`
	GoogleToken  string `json:"google_token"`
}

type GoogleContinueRequest struct {
	Credential  string `json:"credential"`
	AccessToken string `json:"access_token"`
}

type PasswordResetRequest struct {
	Email string `form:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

var authLabels = map[string]string{
	"Email":        "Email",
	"Code":         "Code",
	"Password":     "Password",
	"RegisterType": "Type of register",
	"OTP":          "Code",
	"GoogleToken":  "Google Auth",
	"Credential":   "Google Auth",
	"AccessToken":  "Google Auth",
	"NewPassword":  "New Password",
	"Refresh":      "Refresh token",
}

// ContinueWithEmail starts the signup flow. Existing accounts are told to
// log in; new addresses get a code emailed to them.
func (h *AuthHandlers) ContinueWithEmail(c *gin.Context) {
	var req ContinueWithEmailRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	exists, err := h.authSvc.ContinueWithEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrOTPSendFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": domain.ErrOTPSendFailed.Error()})
			return
		}
		log.Printf("continue-with-email failed: %v", err)
		respondUnexpected(c)
		return
	}

	if exists {
		c.JSON(http.StatusOK, gin.H{"email_exists": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"email_exists": false})
}

// CheckSignupOTP verifies a signup code without consuming it, letting the
// client pre-validate before submitting the registration form.
func (h *AuthHandlers) CheckSignupOTP(c *gin.Context) {
	var req OTPCheckRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	err := h.authSvc.CheckSignupOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyRegistered):
			respondFieldError(c, "Email", domain.ErrEmailAlreadyRegistered.Error())
		case errors.Is(err, domain.ErrOTPRecordNotFound), errors.Is(err, domain.ErrOTPNotGenerated), errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			log.Printf("signup otp check failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Register creates the account once the flow's proof (code or Google
// credential) checks out, and returns a fresh token pair.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	// Cross-field: registration needs exactly one proof, a signup code or a
	// Google credential.
	if req.OTP == "" && req.GoogleToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Either otp or google_credential is required."})
		return
	}

	pair, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		RegisterType:     req.RegisterType,
		OTP:              req.OTP,
		GoogleCredential: req.GoogleToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyRegistered):
			respondFieldError(c, "Email", domain.ErrEmailAlreadyRegistered.Error())
		case errors.Is(err, domain.ErrPasswordTooShort), errors.Is(err, domain.ErrPasswordComposition):
			respondFieldError(c, "Password", err.Error())
		case errors.Is(err, domain.ErrGoogleCredential):
			respondFieldError(c, "Google Auth", domain.ErrGoogleCredential.Error())
		case errors.Is(err, domain.ErrOTPRecordNotFound), errors.Is(err, domain.ErrOTPNotGenerated), errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			log.Printf("register failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access":      pair.Access,
		"refresh":     pair.Refresh,
		"is_new_user": true,
	})
}

// ContinueWithGoogle resolves the presented Google credential. Existing
// accounts get tokens immediately; new users get back what the client
// needs to complete registration.
func (h *AuthHandlers) ContinueWithGoogle(c *gin.Context) {
	var req GoogleContinueRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	result, err := h.authSvc.ContinueWithGoogle(c.Request.Context(), req.Credential, req.AccessToken)
	if err != nil {
		if errors.Is(err, domain.ErrGoogleAuthFailed) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}
		log.Printf("continue-with-google failed: %v", err)
		respondUnexpected(c)
		return
	}

	if result.IsNewUser {
		c.JSON(http.StatusCreated, gin.H{
			"is_new_user":  true,
			"email":        result.Email,
			"google_token": result.GoogleToken,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access":      result.Tokens.Access,
		"refresh":     result.Tokens.Refresh,
		"is_new_user": false,
	})
}

// RequestPasswordReset emails a reset code to a registered address. The
// address arrives as a query parameter on the GET request.
func (h *AuthHandlers) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if !bindQuery(c, &req, authLabels) {
		return
	}

	err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotRegistered):
			respondFieldError(c, "Email", domain.ErrEmailNotRegistered.Error())
		case errors.Is(err, domain.ErrOTPSendFailed):
			c.JSON(http.StatusBadRequest, gin.H{"msg": domain.ErrOTPSendFailed.Error()})
		default:
			log.Printf("password reset request failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckPasswordResetOTP verifies a reset code without consuming it.
func (h *AuthHandlers) CheckPasswordResetOTP(c *gin.Context) {
	var req OTPCheckRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	err := h.authSvc.CheckPasswordResetOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotRegistered):
			respondFieldError(c, "Email", domain.ErrEmailNotRegistered.Error())
		case errors.Is(err, domain.ErrOTPRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, domain.ErrOTPNotGenerated), errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			log.Printf("password reset otp check failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ChangePassword consumes the reset code and stores the new password.
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordTooShort), errors.Is(err, domain.ErrPasswordComposition):
			respondFieldError(c, "New Password", err.Error())
		case errors.Is(err, domain.ErrOTPRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, domain.ErrOTPNotGenerated), errors.Is(err, domain.ErrOTPInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			log.Printf("change password failed: %v", err)
			respondUnexpected(c)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"msg": "Password changed."})
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req, authLabels) {
		return
	}

	claims, err := h.tokenSvc.ValidateRefreshToken(req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil || user == nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	pair, err := h.tokenSvc.GeneratePair(user)
	if err != nil {
		log.Printf("token refresh failed: %v", err)
		respondUnexpected(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh})
}
