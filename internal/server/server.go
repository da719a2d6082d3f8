// Package server wires the student handlers, the UI and the operational
// endpoints onto one ServeMux and runs it as an *http.Server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/http/middleware"
	"github.com/aanand-mishra/student-records/internal/http/ui"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

const DefaultAddress = "localhost:8082"

// Options configures the server. Zero values get the defaults below.
type Options struct {
	Addr              string
	APIPrefix         string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger

	CORSOrigins []string
	RateLimit   float64
	RateBurst   int

	// MetricsPath serves Prometheus metrics; empty disables them.
	MetricsPath string
}

// Server hosts the HTTP API and the UI.
type Server struct {
	http    *http.Server
	handler http.Handler
	logger  *slog.Logger
	opts    Options
	errc    chan error
}

// New builds the server around svc. It does not listen until Start.
func New(svc student.Service, opts Options) *Server {
	if svc == nil {
		panic("server.New: service is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	opts.APIPrefix = strings.TrimRight(opts.APIPrefix, "/")
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 10 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	collection := opts.APIPrefix + "/students"
	item := collection + "/{id}"

	// Route table:
	//   GET|POST    {prefix}/students       → student.Collection
	//   PUT|DELETE  {prefix}/students/{id}  → student.Item
	//   GET         /healthz                → liveness
	//   GET         /metrics                → Prometheus (optional)
	//   GET         /                       → UI
	mux := http.NewServeMux()
	mux.HandleFunc(collection, student.Collection(svc))
	mux.HandleFunc(item, student.Item(svc))
	mux.HandleFunc("/healthz", handleHealthz)
	mux.Handle("/", ui.Handler(opts.APIPrefix))

	mws := []middleware.Middleware{
		middleware.Recover(opts.Logger),
		middleware.RequestID,
		middleware.Logger(opts.Logger),
	}

	if opts.MetricsPath != "" {
		metrics := middleware.NewMetrics(routeLabel(collection, opts.MetricsPath))
		mux.Handle(opts.MetricsPath, metrics.Handler())
		mws = append(mws, metrics.Middleware)
	}

	mws = append(mws,
		middleware.RateLimit(opts.RateLimit, opts.RateBurst),
		middleware.CORS(opts.CORSOrigins),
	)

	handler := middleware.Chain(mux, mws...)

	return &Server{
		handler: handler,
		logger:  opts.Logger,
		opts:    opts,
		errc:    make(chan error, 1),
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(opts.Logger.Handler(), slog.LevelError),
		},
	}
}

// Handler returns the fully wrapped handler (for httptest).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// Start begins serving HTTP in a background goroutine and returns
// immediately. A listen failure is delivered on Errors().
func (s *Server) Start() {
	go func() {
		s.logger.Info("server started", slog.String("address", s.http.Addr))

		// ListenAndServe returns http.ErrServerClosed when Shutdown() is
		// called. That's expected — we don't report it as an error.
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server encountered an error", slog.String("error", err.Error()))
			s.errc <- err
		}
	}()
}

// Errors yields at most one fatal serve error.
func (s *Server) Errors() <-chan error {
	return s.errc
}

// Stop gracefully shuts down the server: it stops accepting connections
// and waits for in-flight requests, up to ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.FromError(w, types.MethodNotAllowedError(r.Method, http.MethodGet))
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
}

// routeLabel maps a request to one of the registered routes so metric
// labels stay bounded; unknown paths share the "other" label.
func routeLabel(collection, metricsPath string) func(*http.Request) string {
	return func(r *http.Request) string {
		p := r.URL.Path
		switch {
		case p == collection:
			return collection
		case strings.HasPrefix(p, collection+"/"):
			return collection + "/{id}"
		case p == "/", p == "/healthz", p == metricsPath:
			return p
		default:
			return "other"
		}
	}
}
