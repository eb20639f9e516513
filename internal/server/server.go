// Package server exposes the analysis engine over HTTP: JSON endpoints for
// commits, file heatmap and branch graph, Server-Sent Events for chunked
// commit delivery, a WebSocket feed for repository changes, and an in-memory
// collaboration surface for comments and shared views.
package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/repoviz/repoviz/internal/collab"
	"github.com/repoviz/repoviz/internal/config"
	"github.com/repoviz/repoviz/pkg/observability"
)

const serviceName = "repoviz"

// Server holds the HTTP surface's shared state. Analysis passes open their
// own repository handle per request; only the collaboration store and
// telemetry are long-lived.
type Server struct {
	cfg            config.ServerConfig
	logger         *slog.Logger
	store          *collab.Store
	metrics        *observability.AnalysisMetrics
	metricsHandler http.Handler
}

// Option configures optional server wiring.
type Option func(*Server)

// WithAnalysisMetrics records pass counters and durations on analysis
// endpoints.
func WithAnalysisMetrics(m *observability.AnalysisMetrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithMetricsHandler mounts h at /metrics for Prometheus scraping.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// New builds a server for the given configuration. A nil logger discards.
func New(cfg config.ServerConfig, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  collab.NewStore(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware(), otelgin.Middleware(serviceName))

	api := router.Group("/api")
	api.GET("/commits", s.handleCommits)
	api.GET("/commits/stream", s.handleStreamCommits)
	api.GET("/commits/paginated", s.handlePaginatedCommits)
	api.GET("/files/heatmap", s.handleFileHeatmap)
	api.GET("/branches/graph", s.handleBranchGraph)

	// One param name serves all three comment routes; gin rejects
	// conflicting wildcard names at the same position. The id is a commit
	// sha for POST/GET and a comment id for DELETE.
	api.POST("/comments/:id", s.handleAddComment)
	api.GET("/comments/:id", s.handleGetComments)
	api.DELETE("/comments/:id", s.handleDeleteComment)

	api.POST("/views/share", s.handleShareView)
	api.GET("/views/:view_id", s.handleGetView)

	api.GET("/realtime", s.handleRealtime)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if s.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}

	return router
}

// resolveRepoPath picks the repository for a request: the repo_path query
// parameter wins, then the configured default, then the working directory.
func (s *Server) resolveRepoPath(c *gin.Context) string {
	if path := c.Query("repo_path"); path != "" {
		return path
	}

	if s.cfg.RepoPath != "" {
		return s.cfg.RepoPath
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}

// corsMiddleware allows any origin. The visualization frontend is served
// from a separate dev server on another port.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
