package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/middleware"
)

// Version is reported by the health endpoint.
const Version = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "NutriLife API is running",
		"version": Version,
	})
}

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Dashboard *DashboardHandler
	Progress  *ProgressHandler
	Plan      *PlanHandler
	Recipe    *RecipeHandler
	Detection *DetectionHandler
}

// RegisterRoutes mounts the public routes and the bearer-protected ones
// under /api.
func RegisterRoutes(router *gin.Engine, validator middleware.TokenValidator, h Handlers) {
	router.GET("/health", HealthCheck)

	api := router.Group("/api")
	api.GET("/health", HealthCheck)
	h.Auth.RegisterRoutes(api)

	requireAuth := middleware.AuthMiddleware(validator)
	h.Recipe.RegisterRoutes(api, requireAuth)

	protected := api.Group("")
	protected.Use(requireAuth)

	me := protected.Group("/me")
	h.Profile.RegisterRoutes(me)
	h.Dashboard.RegisterRoutes(me)
	h.Progress.RegisterRoutes(me)
	h.Plan.RegisterRoutes(me)

	h.Detection.RegisterRoutes(protected)
}
