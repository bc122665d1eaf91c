package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilife/backend/internal/service"
)

// DetectionHandler accepts camera captures for ingredient recognition.
type DetectionHandler struct {
	detector service.IDetectionService
	limiter  gin.HandlerFunc
}

// NewDetectionHandler creates the handler. limiter may be nil.
func NewDetectionHandler(detector service.IDetectionService, limiter gin.HandlerFunc) *DetectionHandler {
	return &DetectionHandler{detector: detector, limiter: limiter}
}

func (h *DetectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	if h.limiter != nil {
		router.POST("/detect/:category", h.limiter, h.Detect)
		return
	}
	router.POST("/detect/:category", h.Detect)
}

// Detect reads the multipart "image" field. Recognition failures come back
// as an empty ingredient list rather than an error status.
func (h *DetectionHandler) Detect(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"image\" is required"})
		return
	}
	if file.Size > service.MaxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": service.ErrImageTooLarge.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		internalError(c, "failed to read image", err)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, service.MaxImageBytes+1))
	if err != nil {
		internalError(c, "failed to read image", err)
		return
	}

	resp, err := h.detector.Detect(c.Request.Context(), userID, c.Param("category"), image, file.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyImage), errors.Is(err, service.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			internalError(c, "detection failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
