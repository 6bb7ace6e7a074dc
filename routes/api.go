package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/str-zone/app/controllers"
)

// SetupAPIRoutes mounts all versioned API routes
func SetupAPIRoutes(router *gin.Engine, rulesController *controllers.RulesController, cityController *controllers.CityController, propertyController *controllers.PropertyController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Rule lookup routes
		rules := v1.Group("/rules")
		{
			rules.GET("", rulesController.GetRules)
			rules.GET("/geocode", rulesController.Geocode)
			rules.GET("/check", rulesController.Check)
			rules.GET("/export", rulesController.Export)
			rules.POST("/subscribe", rulesController.Subscribe)
		}

		// Saved city routes
		cities := v1.Group("/cities")
		{
			cities.GET("", cityController.ListCities)
			cities.POST("", cityController.SaveCity)
			cities.DELETE("/:name", cityController.DeleteCity)
			cities.POST("/:name/checked", cityController.MarkChecked)
			cities.GET("/quota", cityController.Quota)
			cities.POST("/quota", cityController.RecordCheck)
		}

		// Property management routes
		properties := v1.Group("/properties")
		{
			properties.GET("", propertyController.ListProperties)
			properties.POST("", propertyController.CreateProperty)
			properties.DELETE("/:id", propertyController.DeleteProperty)
			properties.GET("/:id/cleanings", propertyController.ListCleanings)
			properties.POST("/:id/cleanings", propertyController.ScheduleCleaning)
		}
		v1.PATCH("/cleanings/:cleaningID", propertyController.UpdateCleaningStatus)

		// Messaging and AI routes
		v1.POST("/notify/sms", propertyController.SendSMS)
		ai := v1.Group("/ai")
		{
			ai.POST("/chat", propertyController.AIChat)
			ai.POST("/analyze-listing", propertyController.AnalyzeListing)
		}

		// Admin routes
		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/store/clear", adminController.ClearStore)
		}

		// Health check route
		v1.GET("/health", rulesController.HealthCheck)
	}
}

// SetupHealthRoutes mounts the unversioned health endpoints
func SetupHealthRoutes(router *gin.Engine, rulesController *controllers.RulesController) {
	// Root health check
	router.GET("/health", rulesController.HealthCheck)

	// Readiness check
	router.GET("/ready", rulesController.HealthCheck)

	// Liveness check
	router.GET("/live", rulesController.HealthCheck)
}

// SetupMetricsRoutes mounts metrics routes (for Prometheus)
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", func(c *gin.Context) {
		// TODO: expose real Prometheus metrics
		c.JSON(200, gin.H{
			"status": "metrics endpoint - to be implemented",
		})
	})
}

// SetupAllRoutes mounts everything
func SetupAllRoutes(router *gin.Engine, rulesController *controllers.RulesController, cityController *controllers.CityController, propertyController *controllers.PropertyController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, rulesController)
	SetupAPIRoutes(router, rulesController, cityController, propertyController, adminController)
	SetupMetricsRoutes(router)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware installs router-wide middleware
func setupMiddleware(router *gin.Engine) {
	// Recovery middleware
	router.Use(gin.Recovery())

	// Logger middleware
	router.Use(gin.Logger())
}
