package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/service"
	"github.com/nutrilife/backend/internal/types"
)

// PlanHandler serves the user's meal plan and its day pointer.
type PlanHandler struct {
	plans service.IPlanService
}

func NewPlanHandler(plans service.IPlanService) *PlanHandler {
	return &PlanHandler{plans: plans}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/plan")
	{
		plan.GET("", h.GetPlan)
		plan.PUT("", h.SavePlan)
		plan.POST("/generate", h.GeneratePlan)
		plan.GET("/today", h.Today)
		plan.POST("/advance", h.Advance)
	}
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	plan, err := h.plans.GetPlan(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":           plan.ID,
		"days":         plan.PlanDays(),
		"currentIndex": plan.CurrentIndex,
		"updatedAt":    plan.UpdatedAt,
	})
}

func (h *PlanHandler) SavePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	today, err := h.plans.SavePlanDays(c.Request.Context(), userID, req.Days)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	today, err := h.plans.GeneratePlan(c.Request.Context(), userID, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, today)
}

func (h *PlanHandler) Today(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	today, err := h.plans.Today(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, today)
}

func (h *PlanHandler) Advance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	resp, err := h.plans.Advance(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyPlan), errors.Is(err, service.ErrInvalidPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoRecipes):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		internalError(c, "meal plan request failed", err)
	}
}
