package server

import (
	"context"
	"net/http"
	"time"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/events"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobmarket/server")

// Server exposes the dashboard API: JSON payloads, rendered chart
// PNGs, filter options and the reload endpoint. Every request
// recomputes its dashboard from the memoized dataset; only the
// serialized response is cached.
type Server struct {
	logger   *zap.Logger
	store    *dataset.Store
	cache    cache.Cache
	bus      *events.Bus
	cacheTTL time.Duration
	httpSrv  *http.Server
}

func New(cfg *config.Config, logger *zap.Logger, store *dataset.Store, c cache.Cache, bus *events.Bus) *Server {
	s := &Server{
		logger:   logger,
		store:    store,
		cache:    c,
		bus:      bus,
		cacheTTL: cfg.CacheTTL,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/usa/dashboard", s.handleUSADashboard)
	mux.HandleFunc("GET /api/usa/filters", s.handleFilters(dataset.KeyUSA))
	mux.HandleFunc("GET /api/compare/dashboard", s.handleCompareDashboard)
	mux.HandleFunc("GET /api/compare/filters", s.handleFilters(dataset.KeyCompare))
	mux.HandleFunc("GET /charts/usa/{chart}", s.handleUSAChart)
	mux.HandleFunc("GET /charts/compare/{chart}", s.handleCompareChart)
	mux.HandleFunc("POST /admin/reload", s.handleReload)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Register starts the listener on fx startup and drains it on stop.
func (s *Server) Register(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting HTTP server", zap.String("addr", s.httpSrv.Addr))
			go func() {
				if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.logger.Error("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.httpSrv.Shutdown(ctx)
		},
	})
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}
