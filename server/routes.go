package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siegeai/cloudmock/reply"
)

// setupRoutes registers the fixed routes and the persisted resources before the
// mocked ones, so they take precedence on a shared template.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handleRoot()).Methods(http.MethodGet)
	s.router.HandleFunc(s.cfg.OpenAPIPath, s.handleOpenAPI()).Methods(http.MethodGet)
	s.router.Handle(s.cfg.MetricsPath, promhttp.HandlerFor(s.prom, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.resources.Register(s.router)
	s.registry.Register(s.router)
}

func (*Server) handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply.JSON(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
	}
}

func (s *Server) handleOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply.JSON(w, http.StatusOK, s.registry.Document())
	}
}
