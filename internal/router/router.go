// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshoplabs/storefront-backend/internal/catalog"
	"github.com/eshoplabs/storefront-backend/internal/config"
	"github.com/eshoplabs/storefront-backend/internal/handlers"
	"github.com/eshoplabs/storefront-backend/internal/middleware"
	"github.com/eshoplabs/storefront-backend/internal/services"
)

func Initialize(cfg *config.Config) *gin.Engine {
	// Initialize services
	catalogClient := catalog.NewClient(cfg.Catalog)
	productService := services.NewProductService(catalogClient, cfg.Catalog.FetchLimit)
	cartService := services.NewCartService()
	pricingService := services.NewPricingService(cfg.Pricing.TaxRatePercent)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, pricingService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/trending", productHandler.GetTrendingProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/related", productHandler.GetRelatedProducts)
		}

		// Facet routes
		v1.GET("/categories", productHandler.GetCategories)
		v1.GET("/brands", productHandler.GetBrands)

		// Cart routes
		cart := v1.Group("/cart")
		cart.Use(middleware.Session(cartService.NewSessionID))
		cart.Use(middleware.CartRateLimit())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items", cartHandler.UpdateItem)
			cart.DELETE("/items", cartHandler.RemoveItem)
			cart.POST("/promo", cartHandler.ApplyPromoCode)
			cart.DELETE("/promo", cartHandler.RemovePromoCode)
		}
	}

	return r
}
