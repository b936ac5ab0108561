// Package server exposes the rules engine as a JSON HTTP API.
//
// Endpoints:
//
//	POST /v1/validate - validate a lineup or formation document
//	POST /v1/bounds   - movable rectangle for one slot
//	POST /v1/snap     - nearest legal position for one slot
//	POST /v1/convert  - convert a formation document between spaces
//	DELETE /v1/cache  - drop memoized results
//	GET  /healthz     - liveness, build info and cache counters
//	GET  /metrics     - Prometheus metrics (when configured)
//
// Every response carries an X-Request-ID header; a request id supplied by
// the client is kept.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/engine"
)

// maxBodyBytes bounds request bodies. A formation document is a few
// hundred bytes.
const maxBodyBytes = 1 << 20

// Options configures New.
type Options struct {
	Engine *engine.Engine
	Logger *log.Logger

	// Frame is used for screen-space documents that carry no frame.
	Frame court.Frame

	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// Server routes API requests to the engine.
type Server struct {
	engine  *engine.Engine
	logger  *log.Logger
	frame   court.Frame
	metrics http.Handler
	router  chi.Router
}

// New builds the server and its routes.
func New(opts Options) *Server {
	if opts.Engine == nil {
		opts.Engine = engine.New(engine.Options{Logger: opts.Logger})
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Frame == (court.Frame{}) {
		opts.Frame = court.DefaultFrame
	}
	s := &Server{
		engine:  opts.Engine,
		logger:  opts.Logger,
		frame:   opts.Frame,
		metrics: opts.Metrics,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	// instrument wraps the recoverer so a panicking handler is still
	// counted and logged as a 500.
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/validate", s.handleValidate)
		r.Post("/bounds", s.handleBounds)
		r.Post("/snap", s.handleSnap)
		r.Post("/convert", s.handleConvert)
		r.Delete("/cache", s.handleClearCache)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting at most shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
