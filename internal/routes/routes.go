package routes

import (
	"log"
	"net/http"

	"github.com/01moynul/fitshop-api/internal/handlers"
	"github.com/01moynul/fitshop-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	AllowedOrigin string
	// TrustedProxies decides whose X-Forwarded-For is believed. Nil trusts none.
	TrustedProxies []string
	Verifier      middleware.TokenVerifier
	// Limiter guards the unauthenticated lookups: order status and login.
	Limiter *middleware.RateLimiter
}

// CORSMiddleware allows the configured storefront origin to call the API.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		// Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.Default()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("WARNING: invalid trusted proxies %v, trusting none: %v", opts.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}

	// --- APPLY THE CORS GUARD ---
	router.Use(CORSMiddleware(opts.AllowedOrigin))

	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limited = middleware.RateLimit(opts.Limiter)
	}
	requireAuth := middleware.AuthMiddleware(opts.Verifier)
	adminOnly := middleware.RequireRole("admin")

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Auth Routes ---
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", limited, h.Login)
	router.GET("/auth/me", requireAuth, h.Me)

	// --- Storefront Routes (Public) ---
	router.GET("/products", h.GetProducts)
	router.POST("/shipping", h.GetShippingRates)
	router.POST("/payments/intent", h.CreatePaymentIntent)
	router.POST("/orders", h.SubmitOrder)
	router.POST("/order-status", limited, h.OrderStatus)

	// --- Content Routes ---
	for prefix, store := range map[string]handlers.PostStore{"/blogs": h.Blogs, "/articles": h.Articles} {
		group := router.Group(prefix)
		{
			group.GET("", h.ListPosts(store))
			group.GET("/:slug", h.GetPost(store))
			group.POST("", requireAuth, adminOnly, h.CreatePost(store))
			group.PUT("/:id", requireAuth, adminOnly, h.UpdatePost(store))
			group.DELETE("/:id", requireAuth, adminOnly, h.DeletePost(store))
		}
	}

	// --- Protected Routes (Login Required) ---
	protected := router.Group("/")
	protected.Use(requireAuth)
	{
		protected.POST("/metrics/daily", h.UpsertDailyMetric)
		protected.GET("/metrics/daily", h.ListDailyMetrics)
	}

	return router
}
