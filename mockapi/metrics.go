package mockapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	routes prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cloudmock",
			Name:      "mock_store_hits_total",
			Help:      "Mock responses replayed from the store.",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "cloudmock",
			Name:      "mock_store_misses_total",
			Help:      "Mock responses synthesized on first request.",
		}),
		routes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "cloudmock",
			Name:      "mock_routes",
			Help:      "Dynamically registered mock routes.",
		}),
	}
}

func (m *Metrics) observe(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.hits.Inc()
	} else {
		m.misses.Inc()
	}
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}
	m.routes.Set(float64(n))
}
