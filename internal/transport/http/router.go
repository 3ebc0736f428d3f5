// Package httptransport assembles the chi router and its middleware chain.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	lookuphandler "ninlookup/internal/lookup/handler"
	"ninlookup/internal/platform/health"
	"ninlookup/internal/platform/metrics"
	"ninlookup/pkg/platform/httputil"
	"ninlookup/pkg/platform/middleware/metadata"
	request "ninlookup/pkg/platform/middleware/request"
	"ninlookup/pkg/platform/validation"
)

// Deps are the already-wired components the router mounts.
type Deps struct {
	Logger         *slog.Logger
	Lookup         *lookuphandler.Handler
	Health         *health.Handler
	Registry       *prometheus.Registry
	RequestMetrics *request.Metrics
	Metadata       *metadata.Middleware
	RequestTimeout time.Duration
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(d.Metadata.Handler)
	r.Use(request.Logger(d.Logger))
	r.Use(request.BodyLimit(validation.MaxBodySize))
	r.Use(request.LatencyMiddleware(d.RequestMetrics))
	if d.RequestTimeout > 0 {
		r.Use(request.Timeout(d.RequestTimeout))
	}

	d.Health.Register(r)
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Registry))
	}

	d.Lookup.Register(r)
	d.Lookup.RegisterAdmin(r)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "Method not allowed"})
	})
	return r
}
