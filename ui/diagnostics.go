package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"prodstats/internal"
	"prodstats/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Diagnostics serves health, Prometheus metrics and pprof on a separate port
type Diagnostics struct {
	router     *chi.Mux
	store      *session.Store
	logger     *internal.Logger
	started    time.Time
	httpServer *http.Server
}

// NewDiagnostics creates the diagnostics router. store may be nil.
func NewDiagnostics(store *session.Store, logger *internal.Logger) *Diagnostics {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	d := &Diagnostics{
		router:  chi.NewRouter(),
		store:   store,
		logger:  logger.Named("Diagnostics"),
		started: time.Now(),
	}

	d.router.Use(middleware.RequestID)
	d.router.Use(middleware.Recoverer)

	d.router.Get("/healthz", d.handleHealth)
	d.router.Handle("/metrics", promhttp.Handler())
	d.router.Mount("/debug", middleware.Profiler())

	d.httpServer = &http.Server{Handler: d.router, ReadHeaderTimeout: 10 * time.Second}
	return d
}

// Handler exposes the router, mainly for tests
func (d *Diagnostics) Handler() http.Handler {
	return d.router
}

func (d *Diagnostics) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(d.started).Seconds()),
		"dataset_loaded": false,
	}
	if d.store != nil {
		if ds := d.store.Current(); ds != nil {
			health["dataset_loaded"] = true
			health["dataset_id"] = ds.ID
			health["row_count"] = ds.RowCount()
		}
	}
	render.JSON(w, r, health)
}

// Start serves diagnostics on addr until Shutdown is called
func (d *Diagnostics) Start(addr string) error {
	d.httpServer.Addr = addr
	d.logger.Info("Diagnostics listening on %s", addr)
	if err := d.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("diagnostics server failed: %w", err)
	}
	return nil
}

// Shutdown stops the diagnostics server
func (d *Diagnostics) Shutdown(ctx context.Context) error {
	return d.httpServer.Shutdown(ctx)
}
