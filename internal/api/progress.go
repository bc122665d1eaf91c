package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

// ProgressHandler serves meal logging and the progress views.
type ProgressHandler struct {
	progress service.IProgressService
}

func NewProgressHandler(progress service.IProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	progress := router.Group("/progress")
	{
		progress.GET("", h.GetMetrics)
		progress.GET("/history", h.GetHistory)
		progress.GET("/nutrition", h.GetNutrition)
	}

	router.GET("/meal-logs", h.GetMealLogs)
	router.POST("/meal-logs", h.LogMeal)
}

func (h *ProgressHandler) GetMetrics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	metrics, err := h.progress.Metrics(c.Request.Context(), userID)
	if err != nil {
		internalError(c, "failed to compute progress", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *ProgressHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", service.DefaultWindowDays)
	if !ok {
		return
	}

	history, err := h.progress.History(c.Request.Context(), userID, days)
	if err != nil {
		internalError(c, "failed to load history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": history})
}

func (h *ProgressHandler) GetNutrition(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", service.DefaultWindowDays)
	if !ok {
		return
	}

	series, err := h.progress.Series(c.Request.Context(), userID, days)
	if err != nil {
		internalError(c, "failed to load nutrition series", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

func (h *ProgressHandler) GetMealLogs(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	log, err := h.progress.MealLogs(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, "failed to load meal log", err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *ProgressHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.progress.LogMeal(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingMealID),
			errors.Is(err, service.ErrInvalidMealSlot),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, "failed to log meal", err)
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}
