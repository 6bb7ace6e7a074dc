package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes mounts the informational web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		// Home page
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "STR Zone Rules Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		// API documentation
		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "STR Zone API v1",
				"endpoints": map[string]string{
					"rules":           "GET /v1/rules?city=",
					"geocode":         "GET /v1/rules/geocode?q=",
					"check":           "GET /v1/rules/check?q=",
					"export":          "GET /v1/rules/export",
					"subscribe":       "POST /v1/rules/subscribe",
					"cities":          "GET|POST /v1/cities",
					"properties":      "GET|POST /v1/properties",
					"cleanings":       "GET|POST /v1/properties/:id/cleanings",
					"sms":             "POST /v1/notify/sms",
					"ai_chat":         "POST /v1/ai/chat",
					"analyze_listing": "POST /v1/ai/analyze-listing",
					"health":          "GET /v1/health",
				},
			})
		})

		// Status page
		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "STR Zone Rules",
			})
		})
	}
}
