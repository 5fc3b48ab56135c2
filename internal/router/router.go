package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mallow/storefront/config"
	"github.com/mallow/storefront/internal/app/controller"
	"github.com/mallow/storefront/internal/middleware"
)

type Router struct {
	productController  *controller.ProductController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	contactController  *controller.ContactController
	formLimiter        *middleware.RateLimiter
	config             *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	contactController *controller.ContactController,
	formLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:  productController,
		cartController:     cartController,
		checkoutController: checkoutController,
		contactController:  contactController,
		formLimiter:        formLimiter,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Mallow API is running",
		})
	})

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Mallow API"})
		})

		products := api.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		cart := api.Group("/cart")
		{
			cart.POST("", r.cartController.CreateCart)
			cart.GET("/:id", r.cartController.GetCart)
			cart.POST("/:id/items", r.cartController.AddItem)
			cart.PUT("/:id/items/:product_id", r.cartController.UpdateItem)
			cart.DELETE("/:id/items/:product_id", r.cartController.RemoveItem)
		}

		checkout := api.Group("/checkout")
		{
			checkout.POST("", r.checkoutController.CreateSession)
			checkout.GET("/status/:session_id", r.checkoutController.GetStatus)
		}

		api.POST("/webhook/stripe", r.checkoutController.Webhook)

		forms := api.Group("")
		if r.formLimiter != nil {
			forms.Use(middleware.RateLimitMiddleware(r.formLimiter))
		}
		{
			forms.POST("/contact", r.contactController.SubmitMessage)
			forms.POST("/subscribe", r.contactController.Subscribe)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID, Stripe-Signature")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
