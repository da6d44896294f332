// Package server assembles the emulator's HTTP surface.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/siegeai/cloudmock/auth"
	"github.com/siegeai/cloudmock/config"
	"github.com/siegeai/cloudmock/mockapi"
	"github.com/siegeai/cloudmock/mockstore"
	"github.com/siegeai/cloudmock/persist"
	"github.com/siegeai/cloudmock/resources"
)

const (
	WelcomeMessage  = "Welcome to the Azure Emulator"
	ShutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg       config.Config
	router    *mux.Router
	prom      *prometheus.Registry
	metrics   *httpMetrics
	registry  *mockapi.Registry
	resources *resources.Handler
}

// New loads the configured services and wires every route. A service without any
// usable description documents only logs a warning.
func New(cfg config.Config) *Server {
	prom := prometheus.NewRegistry()
	prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	registry := mockapi.NewRegistry(mockstore.New(), mockapi.WithMetrics(mockapi.NewMetrics(prom)))
	if n := registry.LoadServices(cfg.SpecsPath, cfg.Services...); n == 0 {
		slog.Warn("no mock routes registered", "specs", cfg.SpecsPath, "services", cfg.Services)
	}

	s := &Server{
		cfg:       cfg,
		router:    mux.NewRouter(),
		prom:      prom,
		metrics:   newHTTPMetrics(prom),
		registry:  registry,
		resources: resources.New(persist.NewMemory(), auth.StaticToken(cfg.AuthToken)),
	}
	s.setupRoutes()
	return s
}

func (s *Server) Registry() *mockapi.Registry {
	return s.registry
}

// Handler is the router wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.router)
}

// Serve answers requests on l until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- hs.Serve(l)
	}()

	slog.Info("listening", "addr", l.Addr().String(), "routes", s.registry.Len())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}
