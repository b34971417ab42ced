// @title Support Brain API
// @version 1.0
// @description Drafts support replies from past tickets and ingested knowledge
// @host localhost:8000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/supportbrain/backend/internal/infrastructure/config"
	applog "github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/infrastructure/singleton"
	"github.com/supportbrain/backend/internal/wire"
)

func main() {
	applog.Init(nil)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	listener, err := singleton.CheckAndLock(cfg.Server.HTTPPort)
	if err != nil {
		log.Fatalf("port check failed: %v", err)
	}
	if listener == nil {
		log.Println("another instance is already serving this port, exiting")
		os.Exit(0)
	}
	// the HTTP server opens its own listener
	_ = listener.Close()

	app, cleanup, err := wire.InitializeAll()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		cleanup()
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	cancel()
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
