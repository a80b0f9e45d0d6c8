package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"advancecli/internal/config"
	"advancecli/internal/middleware"
	"advancecli/internal/services"
)

// NewRouter assembles the full middleware chain and API surface.
func NewRouter(
	svc *services.AnalysisService,
	health *services.HealthService,
	metrics *services.Metrics,
	cfg config.ServerConfig,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	analysisHandler := NewAnalysisHandler(svc, logger)
	healthHandler := NewHealthHandler(health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/analysis", analysisHandler.Routes())
		r.Get("/health", healthHandler.GetHealth)
	})

	if metrics != nil {
		r.Method("GET", "/metrics", metrics.Handler())
	}

	return r
}
