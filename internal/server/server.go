package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutrilife/backend/config"
	"github.com/nutrilife/backend/internal/api"
	"github.com/nutrilife/backend/internal/jobs"
	"github.com/nutrilife/backend/internal/middleware"
	"github.com/nutrilife/backend/internal/router"
	"github.com/nutrilife/backend/internal/service"
)

// Server represents the HTTP server and its background jobs
type Server struct {
	cfg       *config.Config
	router    *gin.Engine
	http      *http.Server
	db        *gorm.DB
	logger    *zap.Logger
	scheduler *jobs.Scheduler
}

// New wires every service against db. redisClient may be nil, in which case
// metrics are not cached and rate limits are not enforced.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()

	var cache service.MetricsCache = service.NoopMetricsCache{}
	if redisClient != nil {
		cache = service.NewRedisMetricsCache(redisClient, cfg.MetricsCacheTTL, logger)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	profileService := service.NewProfileService(db, cache, logger)
	logs := service.NewMealLogService(db)
	summaries := service.NewSummaryService(db, logs, logger)
	recipes := service.NewRecipeService(db)
	plans := service.NewPlanService(service.NewPlanRepository(db), logs, recipes, loc, logger)
	plans.SetMetricsCache(cache)
	progress := service.NewProgressService(logs, summaries, plans, profileService, service.NewDefaultTargets(), cache,
		service.ProgressOptions{WindowDays: cfg.MetricsWindowDays, Location: loc}, logger)

	detector, err := newDetector(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var archive service.CaptureArchiver
	if cfg.DetectionArchiveToS3 {
		store, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3: %w", err)
		}
		archive = service.NewCaptureArchive(store, logger)
	}
	detection := service.NewDetectionService(db, detector, archive, logger)
	logger.Info("ingredient detection configured",
		zap.String("provider", detector.Name()),
		zap.Bool("archive", archive != nil))

	var detectLimit, loginLimit gin.HandlerFunc
	if redisClient != nil {
		detectLimit = middleware.NewDetectionRateLimiter(redisClient, cfg.DetectionRateLimit, logger).Middleware()
		loginLimit = middleware.NewLoginRateLimiter(redisClient, logger).Middleware()
	} else {
		logger.Warn("redis unavailable; rate limiting and metrics caching disabled")
	}

	engine := router.New(cfg, logger)
	api.RegisterRoutes(engine, authService, api.Handlers{
		Auth:      api.NewAuthHandler(authService, loginLimit),
		Profile:   api.NewProfileHandler(profileService),
		Dashboard: api.NewDashboardHandler(progress),
		Progress:  api.NewProgressHandler(progress),
		Plan:      api.NewPlanHandler(plans),
		Recipe:    api.NewRecipeHandler(recipes),
		Detection: api.NewDetectionHandler(detection, detectLimit),
	})

	scheduler := jobs.NewScheduler(loc, logger)
	if err := scheduler.Add(cfg.SummaryCron, "nightly-summary", jobs.NewNightlySummaryJob(summaries, loc, logger)); err != nil {
		return nil, fmt.Errorf("invalid summary schedule %q: %w", cfg.SummaryCron, err)
	}

	return &Server{
		cfg:       cfg,
		router:    engine,
		db:        db,
		logger:    logger,
		scheduler: scheduler,
	}, nil
}

// newDetector picks the recognition backend named by the configuration.
func newDetector(ctx context.Context, cfg *config.Config) (service.Detector, error) {
	switch cfg.DetectionProvider {
	case "rekognition":
		awsCfg, err := config.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return service.NewRekognitionDetector(rekognition.NewFromConfig(awsCfg)), nil
	case "roboflow", "":
		if cfg.RoboflowWorkflowURL == "" {
			return service.NoopDetector{}, nil
		}
		return service.NewRoboflowDetector(cfg.RoboflowWorkflowURL, cfg.RoboflowAPIKey, cfg.DetectionTimeout), nil
	default:
		return service.NoopDetector{}, nil
	}
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the scheduler and serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.scheduler.Start()

	s.http = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the scheduler
func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop(ctx)
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
