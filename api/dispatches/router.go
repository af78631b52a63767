package dispatches

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kilianp07/dispatchrec/core/dispatch"
	"github.com/kilianp07/dispatchrec/core/logger"
	"github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/core/responsetime"
)

// Options configures the HTTP API.
type Options struct {
	Manager *dispatch.SyncManager
	// Tracker collects response times not tied to a dispatch. Access is
	// serialized by the handler.
	Tracker *responsetime.Tracker
	Metrics metrics.Sink
	Logger  logger.Logger
	// Token enables bearer authentication on /api routes when non-empty.
	Token string
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter returns the HTTP handler serving the dispatch API.
func NewRouter(o Options) http.Handler {
	h := newHandler(o)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestLogger(h.log))
	if o.MetricsHandler != nil {
		r.Handle("/metrics", o.MetricsHandler)
	}
	r.Group(func(r chi.Router) {
		r.Use(bearerAuth(o.Token))
		r.Route("/api/dispatches", func(r chi.Router) {
			r.Get("/", h.list)
			r.Post("/", h.create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.read)
				r.Put("/", h.update)
				r.Delete("/", h.delete)
				r.Post("/response-times", h.addResponseTime)
				r.Get("/response-times/average", h.average)
			})
		})
		r.Post("/api/response-times", h.trackResponseTime)
		r.Get("/api/response-times/average", h.trackerAverage)
	})
	return r
}

// bearerAuth rejects requests lacking "Authorization: Bearer <token>".
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debugw("http request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
