package registry

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/starui-dev/star/internal/errors"
)

const tracerName = "github.com/starui-dev/star/internal/registry"

// ServerConfig configures the registry HTTP server.
type ServerConfig struct {
	// Namespace is the metrics namespace (default: "star").
	Namespace string

	// Registry is the Prometheus registry metrics are registered with and
	// served from. Default: a fresh registry per server.
	Registry *prometheus.Registry

	// Logger receives one line per request. Default: no logging.
	Logger func(method, path string, status int, d time.Duration)
}

// ServerOption configures the registry HTTP server.
type ServerOption func(*ServerConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) ServerOption {
	return func(c *ServerConfig) {
		c.Namespace = namespace
	}
}

// WithMetricsRegistry sets the Prometheus registry.
func WithMetricsRegistry(r *prometheus.Registry) ServerOption {
	return func(c *ServerConfig) {
		c.Registry = r
	}
}

// WithRequestLogger sets the per-request log hook.
func WithRequestLogger(fn func(method, path string, status int, d time.Duration)) ServerOption {
	return func(c *ServerConfig) {
		c.Logger = fn
	}
}

type serverMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newServerMetrics(cfg ServerConfig) *serverMetrics {
	factory := promauto.With(cfg.Registry)
	return &serverMetrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "registry",
			Name:      "requests_total",
			Help:      "Total number of registry requests",
		}, []string{"route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: "registry",
			Name:      "request_duration_seconds",
			Help:      "Registry request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Server serves a Client using the layout NewHTTP consumes.
type Server struct {
	client  Client
	router  chi.Router
	metrics *serverMetrics
	tracer  trace.Tracer
	logger  func(method, path string, status int, d time.Duration)
}

// NewServer returns an http.Handler exposing client.
func NewServer(client Client, opts ...ServerOption) *Server {
	cfg := ServerConfig{Namespace: "star"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		client:  client,
		metrics: newServerMetrics(cfg),
		tracer:  otel.Tracer(tracerName),
		logger:  cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Get("/manifest.json", s.handleManifest)
	r.Get("/components/{file}", s.handleSource)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, span := s.tracer.Start(r.Context(), "registry "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		d := time.Since(start)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(d.Seconds())
		if s.logger != nil {
			s.logger(r.Method, r.URL.Path, status, d)
		}
	})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := s.client.List(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	m := Manifest{
		ManifestVersion: 1,
		Components:      make(map[string]Component, len(names)),
	}
	if c, ok := s.client.(*Catalog); ok {
		if full, err := c.Manifest(ctx); err == nil {
			m.Version = full.Version
		}
	}
	for _, name := range names {
		comp, err := s.client.Metadata(ctx, name)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		m.Components[name] = *comp
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(m)
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, ok := strings.CutSuffix(file, ".py")
	if !ok || name == "" {
		http.NotFound(w, r)
		return
	}

	src, err := s.client.Source(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/x-python; charset=utf-8")
	_, _ = w.Write([]byte(src))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	trace.SpanFromContext(r.Context()).RecordError(err)
	if errors.Is(err, errors.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}
