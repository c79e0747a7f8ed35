package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"activities/internal/metrics"
	"activities/internal/models"
	"activities/internal/validation"
)

// Repository is the set of activity operations the HTTP layer relies on.
type Repository interface {
	AddActivity(ctx context.Context, form models.ActivityForm) (models.Activity, error)
	GetActivities(ctx context.Context) ([]models.Activity, error)
	GetActivityByID(ctx context.Context, id string) (models.Activity, bool, error)
	UpdateActivity(ctx context.Context, id string, form models.ActivityForm) (bool, error)
	RemoveActivity(ctx context.Context, id string) (bool, error)
	AddParticipant(ctx context.Context, id, name string) (bool, error)
	RemoveParticipant(ctx context.Context, id string, index int) (bool, error)
}

// Server provides HTTP handlers for the activity tracker.
type Server struct {
	engine    *gin.Engine
	repo      Repository
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
	staticDir string
}

// Options bundles the optional collaborators of a Server.
type Options struct {
	Validator *validation.Validator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	StaticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(repo Repository, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	v := opts.Validator
	if v == nil {
		v = validation.New()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz", "/metrics"))

	srv := &Server{
		engine:    router,
		repo:      repo,
		validator: v,
		metrics:   opts.Metrics,
		logger:    logger,
		staticDir: opts.StaticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.GET("/export.csv", s.handleExportActivities)

		activities := api.Group("/activities")
		{
			activities.GET("", s.handleListActivities)
			activities.POST("", s.handleCreateActivity)
			activities.GET("/:id", s.handleGetActivity)
			activities.PUT("/:id", s.handleUpdateActivity)
			activities.DELETE("/:id", s.handleDeleteActivity)
			activities.POST("/:id/participants", s.handleAddParticipant)
			activities.DELETE("/:id/participants/:index", s.handleRemoveParticipant)
		}
	}

	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondValidation returns one message per invalid field.
func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// respondNotFound is used whenever the repository reports that nothing changed.
func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Atividade não encontrada"})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
