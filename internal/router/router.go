package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/middleware"
)

// New returns an engine with the global middleware installed: panic
// recovery, request logging and CORS. Routes are mounted by the caller.
func New(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	// Uploads above this are rejected by the detection handler anyway.
	router.MaxMultipartMemory = 10 << 20

	return router
}
