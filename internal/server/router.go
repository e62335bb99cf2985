package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/starwars-blog/pkg/logger"
)

// RouteRegistrar is implemented by every HTTP delivery handler
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// HealthCheck reports whether the service dependencies are reachable
type HealthCheck func(ctx context.Context) error

// Options configures the HTTP router
type Options struct {
	ServiceName    string
	RequestTimeout time.Duration
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
	HealthCheck    HealthCheck
	SwaggerHandler http.Handler
	RateLimiter    *RateLimiter
	CORS           cors.Options
}

// DefaultCORSOptions allows any origin, as the blog front end is served elsewhere
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}
}

// NewRouter builds the HTTP handler: middlewares, platform endpoints and
// the routes of every registrar.
func NewRouter(opts Options, registrars ...RouteRegistrar) http.Handler {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(TracingMiddleware(opts.ServiceName + "-http-request"))
	router.Use(LoggingMiddleware)
	router.Use(TimeoutMiddleware(opts.RequestTimeout))
	router.Use(SecurityHeadersMiddleware())
	if opts.Registerer != nil {
		router.Use(NewHTTPMetrics(opts.Registerer).Middleware)
	}
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.Middleware)
	}

	router.HandleFunc("/health", healthHandler(opts.HealthCheck)).Methods(http.MethodGet)
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	if opts.SwaggerHandler != nil {
		router.PathPrefix("/swagger/").Handler(opts.SwaggerHandler)
	}

	for _, registrar := range registrars {
		registrar.RegisterRoutes(router)
	}

	router.HandleFunc("/", sitemapHandler(router)).Methods(http.MethodGet)

	logger.Logger.Info().
		Str("service", opts.ServiceName).
		Dur("timeout", opts.RequestTimeout).
		Int("registrars", len(registrars)).
		Msg("HTTP router configured")

	return cors.New(opts.CORS).Handler(router)
}

func healthHandler(check HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := check(ctx); err != nil {
				logger.Warn(ctx).Err(err).Msg("Health check failed")
				RespondError(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}

		RespondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "healthy",
		})
	}
}

// sitemapHandler lists every registered endpoint
func sitemapHandler(router *mux.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seen := map[string]bool{}
		var endpoints []string

		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			tpl, err := route.GetPathTemplate()
			if err != nil || seen[tpl] {
				return nil
			}
			seen[tpl] = true
			endpoints = append(endpoints, tpl)
			return nil
		})
		sort.Strings(endpoints)

		RespondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Star Wars blog API",
			Data:    map[string]interface{}{"endpoints": endpoints},
		})
	}
}
