// Package mockapi exposes extracted read endpoints as live HTTP routes backed by a
// shared mock store.
package mockapi

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"

	"github.com/siegeai/cloudmock/extract"
	"github.com/siegeai/cloudmock/mockstore"
	"github.com/siegeai/cloudmock/synth"
)

// Route describes one registered mock route.
type Route struct {
	Service     string
	Template    string
	OperationID string
	File        string
}

type route struct {
	Route
	endpoint extract.Endpoint
}

// Registry is filled once at startup with Add and then installed on a router with
// Register. It must not be modified after Register.
type Registry struct {
	store   *mockstore.Store
	metrics *Metrics

	routes []*route
	seen   map[string]struct{}

	docOnce sync.Once
	doc     *openapi3.T
}

type Option func(*Registry)

func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

func NewRegistry(store *mockstore.Store, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		routes: make([]*route, 0),
		seen:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add keeps the first endpoint seen for each path template and silently drops later
// ones. Templates the router cannot express are logged and dropped. It returns the
// number of endpoints kept.
func (r *Registry) Add(service string, eps ...extract.Endpoint) int {
	n := 0
	for _, ep := range eps {
		tpl := NormalizeTemplate(ep.PathTemplate)
		if _, dup := r.seen[tpl]; dup {
			continue
		}
		if err := mux.NewRouter().Path(tpl).GetError(); err != nil {
			slog.Warn("skipping unroutable path template", "service", service, "path", ep.PathTemplate, "err", err)
			continue
		}
		r.seen[tpl] = struct{}{}

		file := ""
		if ep.Document != nil {
			file = ep.Document.Path
		}
		r.routes = append(r.routes, &route{
			Route: Route{
				Service:     service,
				Template:    tpl,
				OperationID: ep.OperationID,
				File:        file,
			},
			endpoint: ep,
		})
		n += 1
	}
	return n
}

func (r *Registry) Routes() []Route {
	res := make([]Route, len(r.routes))
	for i, rt := range r.routes {
		res[i] = rt.Route
	}
	return res
}

func (r *Registry) Len() int {
	return len(r.routes)
}

// Register installs one GET handler per route, in the order the routes were added.
func (r *Registry) Register(router *mux.Router) {
	for _, rt := range r.routes {
		router.HandleFunc(rt.Template, r.handleMock(rt)).Methods(http.MethodGet).Name(rt.OperationID)
	}
	r.metrics.setRoutes(len(r.routes))
}

func (r *Registry) handleMock(rt *route) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		key := ConcretePath(rt.Template, mux.Vars(req))
		body, hit, err := r.store.GetOrCreate(key, func() ([]byte, error) {
			return synth.Marshal(rt.endpoint.ResponseSchema, rt.endpoint.Document)
		})
		if err != nil {
			slog.Error("could not synthesize mock response", "path", key, "operation", rt.OperationID, "err", err)
			body = []byte("{}")
		}
		r.metrics.observe(hit)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// NormalizeTemplate makes a description path usable as a route: a missing leading
// slash is added and any query part is dropped.
func NormalizeTemplate(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// ConcretePath substitutes request values into a template's {placeholders}.
// Placeholders without a value are left as they are.
func ConcretePath(template string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += open

		b.WriteString(rest[:open])
		name := rest[open+1 : end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		if v, ok := vars[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
	return b.String()
}
