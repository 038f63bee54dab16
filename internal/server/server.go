// Package server exposes lexical-order inference over HTTP.
//
// Routes:
//
//	POST /v1/order   {"words": [...]} -> {"run_id", "order", "cached"}
//	POST /v1/graph   {"words": [...]} -> DOT (or SVG with ?format=svg)
//	GET  /healthz    -> ok
//
// Inconsistent word lists answer 422 with {"code", "error"}, where error
// names the offending characters. Malformed requests answer 400.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lexorder/pkg/errors"
	"github.com/matzehuels/lexorder/pkg/observability"
	"github.com/matzehuels/lexorder/pkg/pipeline"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

// Options configures a Server.
type Options struct {
	// Workers is the closure parallelism per request. Zero means one per CPU.
	Workers int

	// Limits bounds accepted word lists.
	Limits errors.Limits

	// TTL is the lifetime of cache entries written by requests.
	TTL time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *log.Logger
}

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger
}

// New creates a server backed by runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{runner: runner, opts: opts, logger: opts.Logger}
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/order", s.handleOrder)
		r.Post("/graph", s.handleGraph)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// logRequests logs each request and reports it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}
