package wire

import (
	"context"
	"log/slog"

	"github.com/supportbrain/backend/internal/application/assist"
	"github.com/supportbrain/backend/internal/application/ingest"
	"github.com/supportbrain/backend/internal/domain/knowledge"
	applog "github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/infrastructure/tenant"
	"github.com/supportbrain/backend/internal/interfaces"
)

// App server process: HTTP (with MCP over SSE) plus the tenant seed watcher
type App struct {
	HTTPServer *interfaces.HTTPServer
	seedSyncer *tenant.SeedSyncer
	logger     *slog.Logger
}

// NewApp creates the application
func NewApp(httpServer *interfaces.HTTPServer, seedSyncer *tenant.SeedSyncer) *App {
	return &App{
		HTTPServer: httpServer,
		seedSyncer: seedSyncer,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Start syncs tenant seeds and starts the HTTP server in the background
func (a *App) Start(ctx context.Context) error {
	a.logger.Info("Starting support brain")

	if err := a.seedSyncer.Start(ctx); err != nil {
		a.logger.Error("Failed to start tenant seed sync",
			"error", err,
		)
	}

	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("HTTP server stopped with error",
				"error", err,
			)
		}
	}()

	a.logger.Info("Support brain started")
	return nil
}

// Stop stops the watcher and drains the HTTP server
func (a *App) Stop() error {
	a.logger.Info("Stopping support brain")

	a.seedSyncer.Stop()

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.logger.Info("Support brain stopped")
	return nil
}

// Services application services for the command line tool
type Services struct {
	Assistant  *assist.Assistant
	Historical *ingest.HistoricalService
	Web        *ingest.WebService
	Index      knowledge.VectorIndex
	Seeds      *tenant.SeedSyncer
}

// NewServices groups the services
func NewServices(
	assistant *assist.Assistant,
	historical *ingest.HistoricalService,
	web *ingest.WebService,
	index knowledge.VectorIndex,
	seeds *tenant.SeedSyncer,
) *Services {
	return &Services{
		Assistant:  assistant,
		Historical: historical,
		Web:        web,
		Index:      index,
		Seeds:      seeds,
	}
}
