package router

import (
	"net/http"

	"flowershop/internal/handler"
	"flowershop/internal/metrics"
	"flowershop/internal/middleware"
	"flowershop/internal/web"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// The revalidation endpoint is only registered when revalidateKey is set.
func New(
	storefrontHandler *handler.StorefrontHandler,
	catalogHandler *handler.CatalogHandler,
	relayHandler *handler.RelayHandler,
	limiter *middleware.RateLimiter,
	revalidateKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /static/", web.Static())

	// Storefront
	mux.HandleFunc("GET /{$}", storefrontHandler.Index)
	mux.Handle("POST /order", limiter.Handler(http.HandlerFunc(storefrontHandler.Submit)))

	// JSON API
	mux.HandleFunc("GET /api/catalog", catalogHandler.GetAll)
	mux.Handle("POST /api/lead", limiter.Handler(http.HandlerFunc(relayHandler.Lead)))
	mux.Handle("POST /api/order", limiter.Handler(http.HandlerFunc(relayHandler.Order)))

	if revalidateKey != "" {
		mux.Handle("POST /api/revalidate",
			middleware.APIKeyAuth(revalidateKey, logger)(http.HandlerFunc(catalogHandler.Revalidate)))
	}

	// Apply middleware in order: Recovery -> Logging -> CORS -> Metrics
	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
