// Package server provides HTTP server lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/godshot/godshot/internal/core/api"
	"github.com/godshot/godshot/internal/core/auth"
	"github.com/godshot/godshot/internal/core/config"
	"github.com/godshot/godshot/internal/metrics"
)

// HTTPServer manages HTTP server lifecycle.
type HTTPServer struct {
	server *http.Server
	log    zerolog.Logger
}

// NewHTTPServer creates the HTTP server with logging, recovery, and
// metrics middleware. authenticator may be nil; the admin routes are
// then left unmounted.
func NewHTTPServer(cfg *config.ServerConfig, service *api.Service, authenticator *auth.Authenticator, log zerolog.Logger) (*HTTPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", service.Routes(authenticator))

	return &HTTPServer{
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

// Start binds the listener and serves until Shutdown is called.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", s.server.Addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests, forcing close when ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		s.server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// requestLogger emits one structured line per request and feeds the
// request duration histogram.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			elapsed := time.Since(start)
			metrics.HTTPRequestDuration.WithLabelValues(
				r.Method, route, strconv.Itoa(ww.Status())).Observe(elapsed.Seconds())
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", elapsed).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
