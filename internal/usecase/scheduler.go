package usecase

import (
	"context"
	"sync"
	"time"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/pkg/logger"
	"launchsync-service/pkg/metrics"
)

const defaultHistoryLimit = 50

// Scheduler triggers the sync pipeline on a fixed wall-clock interval and
// tracks run outcomes. Runs never overlap: a trigger that fires while a
// run is active is dropped, never queued, so the retry mechanism for a
// failed run is simply the next tick.
type Scheduler struct {
	syncer   *LaunchSyncer
	interval time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics

	mu           sync.Mutex
	running      bool
	phase        entity.SyncPhase
	history      []entity.SyncRunResult
	historyLimit int
}

// NewScheduler creates a new sync scheduler
func NewScheduler(syncer *LaunchSyncer, interval time.Duration, log logger.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		syncer:       syncer,
		interval:     interval,
		logger:       log,
		metrics:      m,
		phase:        entity.PhaseIdle,
		historyLimit: defaultHistoryLimit,
	}
}

// Start runs one sync immediately and then one per interval until the
// context is cancelled. Because the loop is sequential, a run that takes
// longer than the interval simply defers the next trigger.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting sync scheduler", "interval", s.interval.String())
	s.RunNow(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sync scheduler stopped")
			return
		case <-ticker.C:
			s.RunNow(ctx)
		}
	}
}

// RunNow triggers a sync run unless one is already in flight, in which
// case the trigger is dropped.
func (s *Scheduler) RunNow(ctx context.Context) {
	if !s.tryBegin() {
		s.logger.Warn("Sync already in progress, dropping trigger")
		return
	}
	defer s.end()

	start := time.Now()
	result := s.syncer.RunOnce(ctx, s.setPhase)

	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues(string(result.Outcome)).Inc()
		s.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	}
	s.record(result)

	s.logger.Info("Sync run finished",
		"runId", result.RunID,
		"outcome", result.Outcome,
		"fetched", result.Fetched,
		"new", result.New,
		"failed", result.Failed,
		"notified", result.Notified,
		"duration", time.Since(start).String())
}

// Phase returns the scheduler's current position in the pipeline.
func (s *Scheduler) Phase() entity.SyncPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// History returns a copy of the recorded run results, oldest first.
func (s *Scheduler) History() []entity.SyncRunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.SyncRunResult, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Scheduler) tryBegin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Scheduler) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.phase = entity.PhaseIdle
}

func (s *Scheduler) setPhase(phase entity.SyncPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

func (s *Scheduler) record(result entity.SyncRunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, result)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
}
