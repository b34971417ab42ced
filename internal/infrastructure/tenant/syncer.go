package tenant

import (
	"context"
	"log/slog"
	"time"

	domainTenant "github.com/supportbrain/backend/internal/domain/tenant"
	"github.com/supportbrain/backend/internal/infrastructure/config"
	"github.com/supportbrain/backend/internal/infrastructure/log"
	"github.com/supportbrain/backend/internal/infrastructure/watcher"
)

const syncTimeout = 10 * time.Second

// SeedSyncer keeps the integrations table in line with the seed file
type SeedSyncer struct {
	path    string
	repo    domainTenant.IntegrationRepository
	watcher *watcher.FileWatcher
	logger  *slog.Logger
}

// NewSeedSyncer creates a syncer; an empty seed path makes it a no-op
func NewSeedSyncer(cfg *config.TenantConfig, repo domainTenant.IntegrationRepository) *SeedSyncer {
	return &SeedSyncer{
		path:   cfg.SeedFile,
		repo:   repo,
		logger: log.NewModuleLogger("tenant", "seed_syncer"),
	}
}

// Sync applies the seed file once
func (s *SeedSyncer) Sync(ctx context.Context) (int, error) {
	integrations, err := LoadSeedFile(s.path)
	if err != nil {
		return 0, err
	}
	applied, err := ApplySeed(ctx, s.repo, integrations)
	if err != nil {
		return applied, err
	}
	s.logger.Info("Seed file applied", "path", s.path, "integrations", applied)
	return applied, nil
}

// Start syncs once and reloads on every change
func (s *SeedSyncer) Start(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	if _, err := s.Sync(ctx); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(s.path, watcher.DefaultDebounceDelay, func(string) {
		syncCtx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if _, err := s.Sync(syncCtx); err != nil {
			s.logger.Error("Seed reload failed", "path", s.path, "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		fw.Stop()
		return err
	}
	s.watcher = fw
	return nil
}

// Stop stops watching
func (s *SeedSyncer) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}
