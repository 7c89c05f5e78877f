// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the breach checker service.
package api

import (
	"breachcheck/internal/api/handler/v1handler"
	"breachcheck/internal/config"
	"breachcheck/pkg/controller"
	"breachcheck/pkg/logger"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification of the /api endpoints.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":5000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds the handling of a single request via http.TimeoutHandler.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string
	// RateLimitPerMinute and RateLimitBurst bound requests per client IP on /api.
	RateLimitPerMinute int
	RateLimitBurst     int
	// Registerer receives the otel exporter collectors. Nil selects the default registerer.
	Registerer prometheus.Registerer
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:               cfg.HTTP.Addr,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout:  cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		RequestTimeout:     cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:     cfg.HTTP.MaxHeaderBytes,
		MetricsPath:        cfg.HTTP.MetricsPath,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		RateLimitBurst:     cfg.HTTP.RateLimitBurst,
	}
}

type Deps struct {
	v1handler.Deps
}

// NewHandler builds the routed handler:
// - Prometheus metrics endpoint (MetricsPath) and the otel exporter behind it
// - Embedded OpenAPI spec and Swagger UI
// - /api routes, rate limited per client IP
// - pprof endpoints for profiling
// wrapped with recover, CORS and logging middlewares.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	v1, err := v1handler.New(deps.Deps, mp)
	if err != nil {
		return nil, fmt.Errorf("could not create v1 handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(controller.WithLogger, controller.WithRecover, controller.WithCORS(opts.CORSOrigins))
	r.NotFound(v1.NotFound)
	r.MethodNotAllowed(v1.MethodNotAllowed)

	// prometheus metrics server
	if opts.MetricsPath != "" {
		gatherer, ok := reg.(prometheus.Gatherer)
		if !ok {
			gatherer = prometheus.DefaultGatherer
		}
		r.Handle(opts.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// swagger playground
	r.Handle("/docs/*", v5emb.New(
		"Breach Checker",
		"/specs/v1.yaml",
		"/docs/",
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(controller.WithRateLimit(opts.RateLimitPerMinute, opts.RateLimitBurst))
		v1.Routes(r)
	})

	// pprof
	r.Handle("/debug/pprof/*", controller.PprofMux())

	return r, nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = opts.ReadTimeout
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, requestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          logger.StdLog(ctx, slog.LevelWarn),
	}, nil
}
