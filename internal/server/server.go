package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhaomaota/word-stone/internal/handler"
	"github.com/zhaomaota/word-stone/internal/logger"
	"github.com/zhaomaota/word-stone/internal/metrics"
	"github.com/zhaomaota/word-stone/internal/session"
	"github.com/zhaomaota/word-stone/internal/sse"
)

// Config tunes the HTTP server
type Config struct {
	Port           int
	Version        string
	TrustedProxies []string
	MaxBodyBytes   int64
}

// Deps are the services the routes call into
type Deps struct {
	Sessions handler.Sessions
	Catalog  session.CatalogState
	Hub      *sse.Hub
	Checks   map[string]handler.HealthChecker
}

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the underlying http.Server
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Checks))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleGetCatalog(deps.Catalog))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", handler.HandleLogin(deps.Sessions))

			r.Route("/{"+handler.URLParamUsername+"}", func(r chi.Router) {
				r.Use(handler.RequireSession(deps.Sessions))

				r.Get("/", handler.HandleGetSession())
				r.Delete("/", handler.HandleLogout(deps.Sessions))
				r.Post("/resync", handler.HandleResync())
				r.Patch("/profile", handler.HandleUpdateProfile(deps.Sessions))

				r.Post("/packs/claim", handler.HandleClaimPacks())
				r.Post("/packs/open", handler.HandleOpenPack())

				r.Get("/inventory", handler.HandleGetInventory())
				r.Post("/inventory/favorite", handler.HandleToggleFavorite())
				r.Post("/inventory/unlock-all", handler.HandleUnlockAll())
				r.Get("/autocomplete", handler.HandleAutocomplete())

				r.Post("/messages", handler.HandleSendMessage())
				r.Post("/roses", handler.HandleSendRose())
				r.Get("/chat", handler.HandleGetChat())

				if deps.Hub != nil {
					r.Get("/events", sse.Handler(deps.Hub, handler.SessionTopic))
				}
			})
		})
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if deps.Hub != nil {
		// Shutdown waits for active responses; open event streams never finish on their own
		httpServer.RegisterOnShutdown(deps.Hub.Stop)
	}
	return &Server{httpServer: httpServer}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets event streams pass through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func quietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if quietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start listens until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
