package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/urfave/negroni"
)

const RequestIDHeader = "X-Request-Id"

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	f := promauto.With(reg)
	return &httpMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cloudmock",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cloudmock",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// logMiddleware tags each request with an id, logs it once it completes and
// records its metrics. An incoming X-Request-Id is kept.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		s.metrics.requests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		s.metrics.duration.WithLabelValues(r.Method).Observe(elapsed.Seconds())

		slog.Info("request",
			"id", id,
			"method", r.Method,
			"uri", r.RequestURI,
			"proto", r.Proto,
			"status", ww.Status(),
			"dur", elapsed)
	})
}
