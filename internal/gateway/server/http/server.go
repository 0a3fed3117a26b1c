// Package http exposes the gateway's local HTTP surface: health probes,
// metrics and the preview/snapshot API the configurator UI consumes.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autocore-io/autocore/internal/gateway/core"
	"github.com/autocore-io/autocore/internal/gateway/preview"
	"github.com/autocore-io/autocore/internal/gateway/vehicle"
	"github.com/autocore-io/autocore/internal/pkg/metrics"
	"github.com/autocore-io/autocore/pkg/log"
	"github.com/autocore-io/autocore/pkg/options"
)

// Deps are the collaborators the HTTP surface reads from.
type Deps struct {
	Core           *core.Service
	Vehicle        *vehicle.Service
	Ready          func() bool
	TriggerRefresh func()
	StartedAt      time.Time
}

type Server struct {
	server  *http.Server
	options *options.HttpOptions
	deps    Deps
	logger  log.Logger
}

// NewServer builds the router and the underlying http.Server.
func NewServer(opts *options.HttpOptions, deps Deps) *Server {
	s := &Server{
		options: opts,
		deps:    deps,
		logger:  log.WithName("http"),
	}

	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReadyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	// Subrouters do not inherit the handler from the parent router.
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	api.HandleFunc("/preview", s.handlePreview).Methods(http.MethodGet)
	api.HandleFunc("/preview/{class}", s.handlePreviewClass).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/gateway/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/vehicle", s.handleVehicle).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:    opts.Addr,
		Handler: r,
	}
	return s
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.deps.Ready != nil && !s.deps.Ready() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Core.Preview())
}

func (s *Server) handlePreviewClass(w http.ResponseWriter, r *http.Request) {
	class := preview.DeviceClass(mux.Vars(r)["class"])
	switch class {
	case preview.ClassMobile, preview.ClassDisplaySmall, preview.ClassDisplayLarge, preview.ClassWeb:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown device class"})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Core.PreviewForClass(class))
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, at, fromCache := s.deps.Core.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot yet"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshot":   snap,
		"fetched_at": at.UTC().Format(time.RFC3339),
		"from_cache": fromCache,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.deps.TriggerRefresh != nil {
		s.deps.TriggerRefresh()
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"state":          s.deps.Core.State(),
		"uptime_seconds": int64(time.Since(s.deps.StartedAt).Seconds()),
	})
}

// handleVehicle serves the formatted vehicle record, falling back to the
// local cache when the backend is unreachable.
func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request) {
	if s.deps.Vehicle == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle service disabled"})
		return
	}

	v, err := s.deps.Vehicle.Get(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Vehicle.FormatForDisplay(v))
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
