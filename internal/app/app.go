package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/identitysvc/internal/config"
	httpx "github.com/you/identitysvc/internal/http"
	"github.com/you/identitysvc/internal/http/handlers"
	"github.com/you/identitysvc/internal/http/middleware"
	"github.com/you/identitysvc/internal/infrastructure/auth"
	"github.com/you/identitysvc/internal/infrastructure/database"
	"github.com/you/identitysvc/internal/infrastructure/notifications"
	"github.com/you/identitysvc/internal/infrastructure/payments"
	"github.com/you/identitysvc/internal/infrastructure/repositories"
	"github.com/you/identitysvc/internal/services"
)

// Run assembles the service and blocks serving HTTP.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := redisClient.Ping(context.Background()); err != nil {
		return err
	}
	rdb := redisClient.Client

	// Infrastructure collaborators
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	mailer := notifications.NewSendGridMailer(cfg.SendGridKey, cfg.EmailFrom, cfg.EmailFromName, cfg.OperatorEmail)
	smsVerifier := notifications.NewTwilioVerify(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioVerifySID)
	processor := payments.NewPayPalProcessor(cfg.PayPalBaseURL, cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalBrandName)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOtpRepository(gdb)
	prefsRepo := repositories.NewPreferencesRepository(gdb)
	productRepo := repositories.NewProductRepository(gdb)
	purchaseRepo := repositories.NewPurchaseRepository(gdb)

	// Services
	otpSvc := services.NewOTPService(otpRepo, mailer, googleVerifier, services.OTPConfig{
		Length: cfg.OTPLength,
		TTL:    cfg.OTPTTL,
	})
	authSvc := services.NewAuthService(userRepo, prefsRepo, otpSvc, passwordSvc, tokenSvc, mailer, googleVerifier)
	phoneSvc := services.NewPhoneVerificationService(userRepo, smsVerifier)
	billingSvc := services.NewBillingService(userRepo, productRepo, purchaseRepo, processor, mailer)

	// Handlers
	authH := handlers.NewAuthHandlers(authSvc, tokenSvc, userRepo)
	userH := handlers.NewUserHandlers(phoneSvc, mailer)
	billingH := handlers.NewBillingHandlers(billingSvc)
	productH := handlers.NewProductHandlers(productRepo)

	// Middleware
	authMW := middleware.AuthMiddleware(tokenSvc, userRepo)
	rateLimiter := middleware.NewRateLimiter(rdb, cfg.ThrottleAnonLimit, cfg.ThrottleUserLimit, cfg.ThrottleWindow)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, userH, billingH, productH, authMW, rateLimiter, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_superuser", "/admin/*", "(GET|POST|PUT|DELETE)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
