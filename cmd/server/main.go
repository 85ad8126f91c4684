package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/freightdeck/freightdeck/internal/config"
	"github.com/freightdeck/freightdeck/internal/infrastructure"
	"github.com/freightdeck/freightdeck/internal/server"
	"github.com/freightdeck/freightdeck/pkg/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	domain := NewDomain(infra, cfg)

	routeSys := routes.New(infra.Logger)
	registerRoutes(routeSys, infra, domain, cfg)
	handler := applyMiddleware(routeSys.Build(), infra, cfg)

	serverSys := server.New(&cfg.Server, handler, infra.Logger, cfg.ShutdownTimeoutDuration())

	if err := infra.Start(); err != nil {
		infra.Logger.Error("infrastructure start failed", "error", err)
		os.Exit(1)
	}
	if err := serverSys.Start(infra.Lifecycle); err != nil {
		infra.Logger.Error("server start failed", "error", err)
		os.Exit(1)
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("service ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		infra.Logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}

	infra.Logger.Info("service stopped gracefully")
}
