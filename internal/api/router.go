// Package api assembles the HTTP router and middleware chain.
package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/api/middleware"
	"github.com/meshai-labs/meshai/internal/handlers"
	"github.com/meshai-labs/meshai/internal/store"
)

// NewRouter creates and configures the HTTP router. The archive may be
// nil; rate limiting is then disabled along with session retrieval.
func NewRouter(logger zerolog.Logger, h *handlers.Handler, archive *store.RedisArchive, rateLimitWhitelist []string) *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware (first to capture all requests)
	r.Use(middleware.Metrics)

	// Security middleware (order matters)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.MaxBodySize(64 * 1024))
	r.Use(middleware.ValidateRequest)

	// Standard middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	// Rate limiting needs Redis; without it the endpoints run unlimited.
	if archive != nil {
		limiter := middleware.NewRateLimiter(archive.Client(), logger, rateLimitWhitelist)
		r.Use(limiter.Middleware)
	}

	// CORS - the frontend is served from a different origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Post("/simple-interaction", h.SimpleInteraction)
		r.Post("/group-discussion", h.GroupDiscussion)
		r.Post("/focus-group", h.FocusGroup)

		r.Get("/personas", h.ListPersonas)
		r.Post("/personas", h.CreatePersona)
		r.Get("/personas/{id}", h.GetPersona)
		r.Put("/personas/{id}", h.UpdatePersona)
		r.Delete("/personas/{id}", h.DeletePersona)

		r.Get("/sessions", h.ListSessions)
		r.Get("/sessions/{id}", h.GetSession)
	})

	return r
}
