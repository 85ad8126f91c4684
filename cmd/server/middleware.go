package main

import (
	"net/http"

	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/infrastructure"
	"github.com/freightdeck/freightdeck/internal/middleware"
)

// applyMiddleware wraps the route handler with logging and CORS.
func applyMiddleware(handler http.Handler, infra *infrastructure.Infrastructure, cfg *config.Config) http.Handler {
	handler = middleware.CORS(&cfg.CORS)(handler)
	handler = middleware.Logger(infra.Logger)(handler)
	return handler
}
