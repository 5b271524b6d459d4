// Package server exposes the transform engine over HTTP.
//
// The API is stateless: every request carries the full model inline, so
// the server can run behind a load balancer without session affinity.
// Responses are memoized in a pluggable byte cache keyed by model hash
// and option fingerprint.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/archlens/archlens/internal/config"
	"github.com/archlens/archlens/pkg/cache"
	"github.com/archlens/archlens/pkg/engine"
	"github.com/archlens/archlens/pkg/model"
)

// Server wires the engine, response cache, and HTTP routing.
//
// The engine's layout cache is not safe for concurrent use, so Transform
// calls are serialized behind a mutex. Layout is cheap relative to
// request handling; contention has not been a problem in practice.
type Server struct {
	engine *webEngine
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
	http   *http.Server
}

// webEngine serializes access to the single-threaded engine.
type webEngine struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func (w *webEngine) transform(m *model.Model, opts engine.Options) (*engine.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.eng.Transform(m, opts)
}

// New builds a server from configuration. The response cache backend is
// chosen by cfg.Cache.Backend; an unreachable Redis is a startup error
// rather than a silent fallback.
func New(cfg config.Config, eng *engine.Engine, responseCache cache.Cache, logger *log.Logger) *Server {
	s := &Server{
		engine: &webEngine{eng: eng},
		cache:  responseCache,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cfg.Cache.TTL.Std(),
		logger: logger,
	}
	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}
	return s
}

// routes assembles the chi router with middleware and API endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transform", s.handleTransform)
		r.Post("/trace", s.handleTrace)
		r.Get("/presets", s.handlePresets)
		r.Get("/cache/stats", s.handleCacheStats)
		r.Delete("/cache", s.handleCacheClear)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	return s.http.Shutdown(shutdownCtx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

// requestID attaches a UUID to each request, echoing an inbound
// X-Request-ID when the client supplies one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", requestIDFrom(r.Context()),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
