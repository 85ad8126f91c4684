package main

import (
	"net/http"

	"github.com/freightdeck/freightdeck/internal/clients"
	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/diagnostics"
	"github.com/freightdeck/freightdeck/internal/documents"
	"github.com/freightdeck/freightdeck/internal/infrastructure"
	"github.com/freightdeck/freightdeck/internal/lifecycle"
	"github.com/freightdeck/freightdeck/pkg/routes"
)

// registerRoutes configures all HTTP routes for the service.
func registerRoutes(r routes.System, infra *infrastructure.Infrastructure, domain *Domain, cfg *config.Config) {
	clientHandler := clients.NewHandler(domain.Clients, infra.Logger, cfg.Pagination)
	r.RegisterGroup(clientHandler.Routes())

	documentHandler := documents.NewHandler(domain.Documents, infra.Logger, cfg.Pagination, cfg.Storage.MaxUploadSizeBytes())
	r.RegisterGroup(documentHandler.Routes())

	diagnosticsHandler := diagnostics.NewHandler(domain.Diagnostics, infra.Logger)
	r.RegisterGroup(diagnosticsHandler.Routes())

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: handleHealthCheck,
	})

	r.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			handleReadinessCheck(w, infra.Lifecycle)
		},
	})
}

// handleHealthCheck responds with OK status for health monitoring.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
