package routes

// Routes package provides all routing functions for the STR Zone service
//
// Layout:
// - api.go: API routes (/v1/*)
// - web.go: web routes (/, /docs, /status)
// - routes.go: package doc
//
// Usage:
// routes.SetupAllRoutes(router, rulesController, cityController, propertyController, adminController)
