// Package server exposes the gateway's HTTP surface: /transform re-serves a
// rewritten page for embedding in a sandboxed frame, /summary answers with a
// best-effort three-bullet overview.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 10 * time.Second
	// Transform waits on two outbound calls (page fetch + completion), so
	// the write timeout has to cover both budgets.
	writeTimeout = 90 * time.Second
)

type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

func New(
	addr string,
	transformer Transformer,
	summarizer Summarizer,
	log *slog.Logger,
) *Server {
	s := &Server{log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /transform", s.logged("transform", s.handleTransform(transformer)))
	mux.HandleFunc("GET /summary", s.logged("summary", s.handleSummary(summarizer)))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	return s
}

// ListenAndServe blocks until the server stops. http.ErrServerClosed is
// swallowed so a graceful shutdown does not read as a failure.
func (s *Server) ListenAndServe() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// logged wraps a handler with per-request slog output.
func (s *Server) logged(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.log.InfoContext(r.Context(), "Request handled",
			"handler", name,
			"method", r.Method,
			"url", r.URL.Query().Get("url"),
			"mode", r.URL.Query().Get("mode"),
			"durationMs", time.Since(start).Milliseconds())
	}
}
