package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LootCrates_Go/internal/handler"
	"github.com/osse101/LootCrates_Go/internal/logger"
	"github.com/osse101/LootCrates_Go/internal/metrics"
)

// Options configures the listener and its middleware
type Options struct {
	Port            int
	APIKey          string
	TrustedProxies  []string
	MaxRequestBytes int64
	Limits          ActivityLimits
}

// Deps are the engine components the routes serve
type Deps struct {
	Crates  handler.CrateService
	Catalog handler.CrateCatalog
	Actors  handler.Flusher
	Store   handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the middleware stack and the route tree
func NewRouter(opts Options, deps Deps) http.Handler {
	if opts.Limits == (ActivityLimits{}) {
		opts.Limits = DefaultActivityLimits()
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = 1 << 20
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	proxies := NewTrustedProxies(opts.TrustedProxies)
	detector := NewSuspiciousActivityDetector(opts.Limits)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(SecurityLoggingMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store, deps.Catalog, deps.Crates))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	crates := handler.NewCrateHandler(deps.Crates, deps.Catalog)
	actors := handler.NewActorHandler(deps.Crates, deps.Catalog)
	admin := handler.NewAdminHandler(deps.Crates, deps.Catalog, deps.Actors)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/crates", func(r chi.Router) {
			r.Get("/", crates.HandleListCrates)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", crates.HandleGetCrate)
				r.Post("/open", crates.HandleOpenCrate)
				r.Post("/force-open", crates.HandleForceOpenCrate)
				r.Post("/keys", crates.HandleGiveKeys)
				r.Get("/keys", crates.HandleGetKeys)
			})
		})

		r.Route("/actors/{actor}", func(r chi.Router) {
			r.Get("/stats", actors.HandleGetStats)
			r.Get("/cooldowns/{crate}", actors.HandleGetCooldown)
			r.Get("/pity/{crate}", actors.HandleGetPity)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reload", admin.HandleReload)
			r.Post("/maintenance", admin.HandleMaintenance)
			r.Post("/flush", admin.HandleFlush)
		})
	})

	return r
}

func isQuietPath(path string) bool {
	for _, p := range quietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// requestID reuses a caller supplied id when it is short enough to log
func requestID(r *http.Request) string {
	if id := r.Header.Get(HeaderRequestID); id != "" && len(id) <= maxIncomingRequestIDLen {
		return id
	}
	return logger.GenerateRequestID()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr,
			LogFieldLength, r.ContentLength,
			LogFieldUserAgent, r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, LogFieldHeaders, sanitized)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRoute, metrics.RoutePattern(r),
			LogFieldStatus, metrics.Status(ww),
			LogFieldBytes, ww.BytesWritten(),
			LogFieldDurationMS, time.Since(start).Milliseconds())
	})
}

// Start listens until Stop is called. A clean Stop returns nil.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
