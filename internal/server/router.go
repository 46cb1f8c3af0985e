package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kindling/api/internal/handler"
	"github.com/kindling/api/internal/ratelimit"
)

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(h *handler.Handler, limiter *ratelimit.Limiter, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(RequestLogger)
	r.Use(Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         86400,
		}))
	}

	r.Use(ratelimit.Middleware(limiter))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Refresh-check poll, kept at its own top-level path so the rate
	// limiter rule can target it directly.
	r.Get("/hn-refresh", h.Refresh)

	r.Route("/api", func(r chi.Router) {
		r.Get("/views/{view}", h.ViewPage)
		r.Get("/items/{id}", h.Item)
		r.Get("/items/{id}/comments", h.Comments)
		r.Get("/users/{handle}", h.User)
		r.Get("/maxitem", h.MaxItem)
	})

	r.Get("/feeds/{view}.rss", h.Feed)

	return r
}
