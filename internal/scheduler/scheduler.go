// Package scheduler runs the periodic opportunity refresh used by watch mode.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/honeycarbs/jobfit/internal/opportunity"
	"github.com/honeycarbs/jobfit/pkg/logging"
)

// Refresher reloads the opportunity list
type Refresher interface {
	Refresh(ctx context.Context, refetch bool) ([]opportunity.Row, error)
}

// Scheduler wraps robfig/cron and manages the refresh loop
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *logging.Logger
	spec      string // e.g. "@every 5m"
	refetch   bool
	onRows    func([]opportunity.Row)

	mu      sync.Mutex
	running bool
}

// New creates a Scheduler firing every interval. onRows receives every successful refresh.
func New(refresher Refresher, interval time.Duration, refetch bool, onRows func([]opportunity.Row), logger *logging.Logger) (*Scheduler, error) {
	if refresher == nil {
		return nil, fmt.Errorf("scheduler: refresher is required")
	}
	if interval < time.Second {
		return nil, fmt.Errorf("scheduler: interval must be at least 1s, got %s", interval)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		logger:    logger,
		spec:      "@every " + interval.String(),
		refetch:   refetch,
		onRows:    onRows,
	}, nil
}

// Start registers the job and starts the scheduler. One refresh also runs
// immediately so the list shows without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("refresh scheduler started", "spec", s.spec, "refetch", s.refetch)

	go s.Run(ctx)

	return nil
}

// Shutdown stops the scheduler and waits for a running refresh to finish
func (s *Scheduler) Shutdown(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("refresh scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run performs one refresh. Overlapping ticks are skipped.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debug("refresh still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if ctx.Err() != nil {
		return
	}

	rows, err := s.refresher.Refresh(ctx, s.refetch)
	if err != nil {
		s.logger.Warn("refresh failed", "err", err)
		return
	}

	s.logger.Debug("refresh complete", "count", len(rows))
	if s.onRows != nil {
		s.onRows(rows)
	}
}
