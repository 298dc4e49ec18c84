// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"media-catalog-service/internal/app/service"
	"media-catalog-service/pkg/locker"
)

// RefreshScheduler periodically re-warms the hero and content row caches so
// interactive requests land on fresh entries. Distributed locking ensures
// only one instance refreshes at a time.
type RefreshScheduler struct {
	catalog  *service.CatalogService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a new RefreshScheduler with distributed
// locking support.
func NewRefreshScheduler(
	catalog *service.CatalogService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RefreshScheduler {
	return &RefreshScheduler{
		catalog:  catalog,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background refresh job.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	// Run immediately if configured
	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

// executeRefresh re-warms the browse caches with distributed locking.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - The lock is held for the full interval so other instances skip the
//     cycle entirely; the read operations themselves are fail-soft, so a
//     degraded refresh just leaves the previous entries in place
func (s *RefreshScheduler) executeRefresh() {
	const lockKey = "refresh:scheduler:lock"

	// Try to acquire lock with interval-based TTL (cooldown model)
	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is refreshing, skipping execution")

		return
	}

	// Lock acquired - run refresh with timeout
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	hero := s.catalog.HeroMovies(ctx)
	rows := s.catalog.ContentRows(ctx)

	s.logger.Info("cache refresh completed",
		zap.Int("hero_titles", len(hero)),
		zap.Int("top_rated", len(rows.TopRated)),
		zap.Int("new_releases", len(rows.NewReleases)),
		zap.Duration("duration", time.Since(start)),
		zap.Duration("cooldown", s.interval),
	)
}
