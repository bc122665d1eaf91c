package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	progress service.IProgressService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(progress service.IProgressService) *DashboardHandler {
	return &DashboardHandler{progress: progress}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
}

// GetDashboard returns the profile summary, today's plan and the quick stats
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dash, err := h.progress.Dashboard(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		internalError(c, "failed to load dashboard", err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
