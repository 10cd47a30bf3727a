// Package httpapi serves the rule manifest, calibration and audit scoring over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
)

// Server limits and cache lifetimes.
const (
	maxBodyBytes    = 1 << 20
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second

	// Browsers revalidate the manifest every minute; shared caches hold it longer.
	manifestCacheControl = "public, max-age=60, s-maxage=3600"
)

// Server holds the immutable engine plus the optional benchmark store.
type Server struct {
	engine *core.Engine
	mgr    contract.StoreManager
	now    contract.Clock
	logger *slog.Logger
}

// NewServer creates a Server. mgr may be nil when benchmarking is disabled.
func NewServer(engine *core.Engine, mgr contract.StoreManager, now contract.Clock, logger *slog.Logger) *Server {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: engine, mgr: mgr, now: now, logger: logger}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/manifest", s.getManifest)
		v1.Get("/rules", s.getRules)
		v1.Get("/calibration", s.getCalibration)
		v1.Post("/audit", s.postAudit)
		v1.Get("/benchmarks/{cohort}", s.getBenchmark)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "manifest", s.engine.Manifest().Hash)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
