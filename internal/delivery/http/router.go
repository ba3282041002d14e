// Package http provides the HTTP delivery layer for the catalog service.
package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/config"
)

// RouterConfig collects what the router serves.
type RouterConfig struct {
	Server     *config.ServerConfig
	Categories *CategoryHandler
	Products   *ProductHandler
	// Checks are consulted by /readyz.
	Checks map[string]Checker
}

// NewRouter builds the service handler: API routes behind the middleware chain,
// plus health and metrics endpoints, all behind CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/v1/products", cfg.Products.List)
	api.HandleFunc("POST /api/v1/products", cfg.Products.Create)
	api.HandleFunc("GET /api/v1/products/export", cfg.Products.Export)
	api.HandleFunc("GET /api/v1/products/{id}", cfg.Products.Get)
	api.HandleFunc("PUT /api/v1/products/{id}", cfg.Products.Update)
	api.HandleFunc("DELETE /api/v1/products/{id}", cfg.Products.Delete)
	api.HandleFunc("GET /api/v1/products/category/{categoryId}", cfg.Products.FindByCategory)

	api.HandleFunc("GET /api/v1/categories", cfg.Categories.List)
	api.HandleFunc("POST /api/v1/categories", cfg.Categories.Create)
	api.HandleFunc("GET /api/v1/categories/statistics", cfg.Categories.Statistics)
	api.HandleFunc("GET /api/v1/categories/{id}", cfg.Categories.Get)
	api.HandleFunc("PUT /api/v1/categories/{id}", cfg.Categories.Update)
	api.HandleFunc("DELETE /api/v1/categories/{id}", cfg.Categories.Delete)
	api.HandleFunc("POST /api/v1/categories/{id}/activate", cfg.Categories.Activate)
	api.HandleFunc("POST /api/v1/categories/{id}/deactivate", cfg.Categories.Deactivate)
	api.HandleFunc("GET /api/v1/categories/{id}/pricing", cfg.Products.Pricing)

	// Chain middlewares in order
	apiHandler := withRoute(Chain(recordRoute(api),
		RecoveryMiddleware(),                   // 1. Recover from panics first
		RequestIDMiddleware(),                  // 2. Add request ID
		TracingMiddleware(),                    // 3. Add tracing span
		MetricsMiddleware(),                    // 4. Record metrics
		RateLimitMiddleware(newLimiter(cfg)),   // 5. Rate limiting
		LoggingMiddleware(),                    // 6. Log request
		TimeoutMiddleware(requestTimeout(cfg)), // 7. Enforce timeout
	))

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)

	// Health check endpoints
	health := newHealthHandler(cfg.Checks)
	mux.HandleFunc("GET /healthz", health.healthz)
	mux.HandleFunc("GET /readyz", health.readyz)
	mux.HandleFunc("GET /livez", health.livez)

	// Metrics endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(mux)
}

func newLimiter(cfg RouterConfig) *RateLimiter {
	if cfg.Server == nil {
		return NewRateLimiter(0, 0)
	}
	return NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
}

func requestTimeout(cfg RouterConfig) time.Duration {
	if cfg.Server == nil {
		return 0
	}
	return cfg.Server.RequestTimeout
}

func allowedOrigins(cfg RouterConfig) []string {
	if cfg.Server == nil || len(cfg.Server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.Server.AllowedOrigins
}
