package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
	"github.com/couchcryptid/ocean-data-dashboard/internal/observability"
	"github.com/couchcryptid/ocean-data-dashboard/internal/render"
)

// SnapshotService computes the three dashboard views for a coordinate.
type SnapshotService interface {
	Snapshot(ctx context.Context, c domain.Coordinate) domain.Snapshot
}

// Deps are the collaborators the page controller needs.
type Deps struct {
	Snapshots     SnapshotService
	Store         domain.CoordinateStore
	Renderer      *render.Renderer
	Ready         sharedobs.ReadinessChecker
	Metrics       *observability.Metrics
	Logger        *slog.Logger
	ChartsEnabled bool
}

// Server serves the dashboard pages plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the page routes, /api/snapshot,
// /healthz, /readyz, and /metrics.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()
	pages := &pageController{
		snapshots:     deps.Snapshots,
		store:         deps.Store,
		renderer:      deps.Renderer,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		chartsEnabled: deps.ChartsEnabled,
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           requestLogging(deps.Logger, mux),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			// Detail pages wait on three upstream APIs.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}

	mux.HandleFunc("GET /{$}", pages.handleMain)
	mux.HandleFunc("POST /{$}", pages.handleSubmit)
	mux.HandleFunc("GET /{domain}", pages.handleDetail)
	mux.HandleFunc("GET /api/snapshot", pages.handleSnapshotAPI)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(deps.Ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
