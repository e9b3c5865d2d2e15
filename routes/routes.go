package routes

import (
	"net/http"

	"github.com/Govind-619/ShopSphere/controllers"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Options carries the settings the router needs from the configuration.
type Options struct {
	JWTSecret      string
	SessionSecret  string
	SecureCookies  bool
	// AllowedOrigins for CORS; empty allows any origin.
	AllowedOrigins []string
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(h *controllers.Handler, opts Options) *gin.Engine {
	router := gin.New()

	// Middleware must be registered before the routes it should wrap.
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware(opts.AllowedOrigins))
	router.Use(utils.SecurityHeadersMiddleware())

	// Checkout state (applied coupon, buy-now item) lives in a signed cookie
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   opts.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(utils.SessionName, store))

	router.GET("/healthz", func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})

	// API version group
	api := router.Group("/" + utils.APIVersion)
	{
		initUserRoutes(api, h, opts.JWTSecret)
		initAdminRoutes(api, h, opts.JWTSecret)
	}

	return router
}
