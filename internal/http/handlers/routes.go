package handlers

import (
	"time"

	"goldlinks/internal/app"
	"goldlinks/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	defaultZone := services.StoreService.DefaultZone()
	var feedInterval time.Duration
	if services.Config != nil {
		feedInterval = services.Config.StatusFeedInterval
	}

	authHandler := NewAuthHandler(services.AuthService)
	storeHandler := NewStoreHandler(services.StoreService)
	productHandler := NewProductHandler(services.ProductService)
	compareHandler := NewCompareHandler(services.CompareService)
	hoursHandler := NewHoursHandler(defaultZone)
	feedHandler := NewStatusFeedHandler(services.StoreService, feedInterval)

	// Auth routes (no authentication required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Public shopper routes
	api.GET("/stores", storeHandler.List)
	api.GET("/stores/:id", storeHandler.Get)
	api.GET("/stores/:id/status", storeHandler.Status)
	api.GET("/stores/:id/hours", storeHandler.Hours)
	api.GET("/stores/:id/products", productHandler.ListByStore)
	api.GET("/compare", compareHandler.Compare)
	api.POST("/hours/parse", hoursHandler.Parse)

	// WebSocket status feed
	api.GET("/ws/stores/:id/status", feedHandler.HandleStatusFeed)

	// Owner routes (business owners, system admins)
	owner := api.Group("")
	owner.Use(middleware.JWTAuth(services.AuthService))
	owner.Use(middleware.OwnerOrAdmin())

	owner.GET("/me/stores", storeHandler.MyStores)
	owner.POST("/stores", storeHandler.Create)
	owner.PUT("/stores/:id", storeHandler.Update)
	owner.DELETE("/stores/:id", storeHandler.Delete)
	owner.PUT("/stores/:id/hours", storeHandler.UpdateHours)
	owner.POST("/stores/:id/logo", storeHandler.UploadLogo)

	owner.POST("/stores/:id/products", productHandler.Create)
	owner.POST("/stores/:id/products/import", productHandler.Import)
	owner.PUT("/products/:id", productHandler.Update)
	owner.DELETE("/products/:id", productHandler.Delete)
	owner.POST("/products/:id/image", productHandler.UploadImage)
}
