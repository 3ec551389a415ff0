package ui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"prodstats/internal"
	"prodstats/internal/config"
	"prodstats/internal/extractor"
	"prodstats/internal/metrics"
	"prodstats/internal/projector"
	"prodstats/internal/session"

	"github.com/gin-gonic/gin"
)

// Server is the local product statistics viewer
type Server struct {
	router    *gin.Engine
	templates *template.Template
	config    *config.Config
	logger    *internal.Logger

	extractor *extractor.Extractor
	projector *projector.Projector
	store     *session.Store

	httpServer *http.Server
}

// NewServer wires the viewer around a fresh dataset store
func NewServer(cfg *config.Config, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	rec := metrics.NewRecorder("web")

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		config:    cfg,
		logger:    logger.Named("Server"),
		extractor: extractor.New(cfg.Upload, extractor.WithLogger(logger), extractor.WithMetrics(rec)),
		projector: projector.NewProjector(logger, rec),
		store:     session.NewStore(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	return s, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the dataset store backing the viewer
func (s *Server) Store() *session.Store {
	return s.store
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/report", s.handleReport)

	api := s.router.Group("/api")
	{
		api.POST("/upload", s.handleFileUpload)
		api.GET("/dataset", s.handleDataset)
		api.DELETE("/dataset", s.handleClearDataset)
		api.GET("/fields", s.handleFields)
		api.POST("/chart", s.handleChart)
		api.GET("/chart.svg", s.handleChartImage)
		api.GET("/chart.png", s.handleChartImage)
	}
}

// Start serves HTTP on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	s.logger.Info("Starting viewer on %s", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("viewer server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down viewer")
	return s.httpServer.Shutdown(ctx)
}
