package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/you/storefront/internal/http/handlers"
	"github.com/you/storefront/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	oh *handlers.OrderHandlers,
	ph *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	ownmw *middleware.OwnershipMW,
	cb middleware.CasbinMiddleware,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/login", ah.Login)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/", jwtmw.WithJWT())
	v.GET("/auth/me", uh.Me)
	v.POST("/orders", oh.Create)
	v.GET("/orders", oh.ListMine)
	v.GET("/orders/:id", ownmw.RequireOrderAccess("id"), oh.Get)
	v.GET("/users/:id", ownmw.RequireSelfOrAdmin("id"), uh.Get)
	v.PUT("/users/:id", ownmw.RequireSelfOrAdmin("id"), uh.Update)

	adm := r.Group("/admin", jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/orders", oh.ListAll)
	adm.PATCH("/orders/:id/status", oh.UpdateStatus)
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
