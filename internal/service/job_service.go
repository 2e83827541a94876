package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	PruneSchedule  = "@every 10m"
	LimiterIdleTTL = 30 * time.Minute
)

// LimiterPruner drops per-client state that has been idle for longer than idle
// and reports how many entries were removed.
type LimiterPruner interface {
	Prune(idle time.Duration) int
}

// JobService runs the periodic housekeeping of the server process.
type JobService struct {
	cron    *cron.Cron
	pruner  LimiterPruner
	idleTTL time.Duration
	log     *logrus.Logger
}

func NewJobService(pruner LimiterPruner, log *logrus.Logger) *JobService {
	return &JobService{
		cron:    cron.New(),
		pruner:  pruner,
		idleTTL: LimiterIdleTTL,
		log:     log,
	}
}

// PruneIdleLimiters removes rate limiter entries idle for longer than the TTL.
func (s *JobService) PruneIdleLimiters() int {
	removed := s.pruner.Prune(s.idleTTL)
	if removed > 0 {
		s.log.WithField("removed", removed).Info("cron job: pruned idle rate limiters")
	} else {
		s.log.Debug("cron job: no idle rate limiters to prune")
	}
	return removed
}

// Start registers the jobs and starts the scheduler in its own goroutine.
func (s *JobService) Start() error {
	if _, err := s.cron.AddFunc(PruneSchedule, func() { s.PruneIdleLimiters() }); err != nil {
		return fmt.Errorf("cron job: failed to schedule limiter pruning: %w", err)
	}
	s.cron.Start()
	s.log.WithField("schedule", PruneSchedule).Info("background jobs started")
	return nil
}

// Stop halts the scheduler and waits for a running job, or for ctx.
func (s *JobService) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
