package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/you/identitysvc/internal/http/handlers"
	"github.com/you/identitysvc/internal/http/middleware"
)

// BuildRouter wires the HTTP surface. Anonymous flow endpoints are
// throttled by IP; authenticated groups throttle per user and the order
// endpoints additionally require a verified account.
func BuildRouter(
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	bh *handlers.BillingHandlers,
	prh *handlers.ProductHandlers,
	authMW gin.HandlerFunc,
	rl *middleware.RateLimiter,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	pub := r.Group("/user").Use(rl.Limit())
	pub.POST("/continue-with-email", ah.ContinueWithEmail)
	pub.POST("/otp/signup/check", ah.CheckSignupOTP)
	pub.POST("/register", ah.Register)
	pub.POST("/continue-with-google", ah.ContinueWithGoogle)
	pub.GET("/otp/password", ah.RequestPasswordReset)
	pub.POST("/otp/password", ah.CheckPasswordResetOTP)
	pub.POST("/password", ah.ChangePassword)
	pub.POST("/token/refresh", ah.Refresh)

	usr := r.Group("/user").Use(authMW, rl.Limit())
	usr.GET("/data", uh.GetData)
	usr.GET("/otp/sms", uh.SendSMSCode)
	usr.POST("/otp/sms", uh.CheckSMSCode)
	usr.POST("/contact", uh.Contact)

	orders := r.Group("/orders").Use(authMW, rl.Limit(), middleware.RequireVerified())
	orders.POST("", bh.CreateOrder)
	orders.POST("/capture", bh.CaptureOrder)
	orders.GET("/purchases", bh.ListPurchases)

	adm := r.Group("/admin").Use(authMW, cb.Enforce())
	adm.GET("/products", prh.List)
	adm.POST("/products", prh.Create)

	return r
}
