package usecase

import (
	"context"
	"sync"
	"time"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/logger"
	"launchsync-service/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
)

// LaunchSyncer runs the fetch/transform/upsert/detect/notify pipeline.
// A run is fatal only when the bulk launch fetch or the known-id listing
// fails; every other failure is scoped to one record or one delivery and
// the run continues. Progress already written to the store stays written.
type LaunchSyncer struct {
	provider    repository.LaunchProvider
	launchRepo  repository.LaunchRepository
	notifier    repository.LaunchNotifier
	logger      logger.Logger
	metrics     *metrics.Metrics
	concurrency int
}

// NewLaunchSyncer creates a new launch syncer
func NewLaunchSyncer(
	provider repository.LaunchProvider,
	launchRepo repository.LaunchRepository,
	notifier repository.LaunchNotifier,
	log logger.Logger,
	m *metrics.Metrics,
	concurrency int,
) *LaunchSyncer {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &LaunchSyncer{
		provider:    provider,
		launchRepo:  launchRepo,
		notifier:    notifier,
		logger:      log,
		metrics:     m,
		concurrency: concurrency,
	}
}

// RunOnce executes one full sync run. setPhase, when non-nil, is told
// about every pipeline phase transition.
func (s *LaunchSyncer) RunOnce(ctx context.Context, setPhase func(entity.SyncPhase)) entity.SyncRunResult {
	if setPhase == nil {
		setPhase = func(entity.SyncPhase) {}
	}

	result := entity.SyncRunResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() {
		result.FinishedAt = time.Now()
		setPhase(entity.PhaseIdle)
	}()

	setPhase(entity.PhaseFetching)
	rawLaunches, err := s.provider.FetchLaunches(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch launches", "runId", result.RunID, "error", err)
		s.countError("fetch_launches")
		return s.fail(result, err)
	}
	result.Fetched = len(rawLaunches)
	if s.metrics != nil {
		s.metrics.LaunchesFetched.Add(float64(len(rawLaunches)))
	}

	// The known-id snapshot must be taken before any upsert so that two
	// launches first seen in the same run are both reported as new.
	known, err := s.launchRepo.ListKnownIDs(ctx)
	if err != nil {
		s.logger.Error("Failed to list known launch ids", "runId", result.RunID, "error", err)
		s.countError("list_known_ids")
		return s.fail(result, err)
	}

	setPhase(entity.PhaseTransforming)
	launches, transformFailed := s.transformAll(ctx, rawLaunches)
	result.Failed += transformFailed

	setPhase(entity.PhasePersisting)
	persisted := make([]entity.Launch, 0, len(launches))
	for i := range launches {
		if err := s.launchRepo.Upsert(ctx, &launches[i]); err != nil {
			s.logger.Error("Failed to upsert launch", "launchId", launches[i].ID, "error", err)
			s.countError("upsert")
			result.Failed++
			continue
		}
		persisted = append(persisted, launches[i])
	}

	setPhase(entity.PhaseDetecting)
	fetchedIDs := make([]string, 0, len(launches))
	for i := range launches {
		fetchedIDs = append(fetchedIDs, launches[i].ID)
	}
	newIDs := DetectNew(known, fetchedIDs)
	result.New = len(newIDs)
	if s.metrics != nil {
		s.metrics.NewLaunches.Add(float64(len(newIDs)))
	}

	// Only durably stored launches are notified; a launch whose upsert
	// failed this run is picked up as new again by a later run.
	setPhase(entity.PhaseNotifying)
	for i := range persisted {
		if _, isNew := newIDs[persisted[i].ID]; !isNew {
			continue
		}
		sent, err := s.notifier.Notify(ctx, &persisted[i])
		if err != nil {
			s.logger.Error("Failed to deliver notification", "launchId", persisted[i].ID, "error", err)
			s.countError("notify")
			result.NotifyFailed++
			continue
		}
		if sent {
			result.Notified++
			if s.metrics != nil {
				s.metrics.NotificationsSent.Inc()
			}
		}
	}

	result.Outcome = entity.OutcomeSucceeded
	return result
}

// transformAll resolves rocket and launchpad references and denormalizes
// every fetched launch on a bounded worker pool. A failed reference lookup
// degrades that one launch to placeholder fields; only launches without a
// provider id are dropped.
func (s *LaunchSyncer) transformAll(ctx context.Context, rawLaunches []entity.RawLaunch) ([]entity.Launch, int) {
	type slot struct {
		launch entity.Launch
		ok     bool
	}
	slots := make([]slot, len(rawLaunches))

	var mu sync.Mutex
	failed := 0

	workers := s.concurrency
	if workers > len(rawLaunches) {
		workers = len(rawLaunches)
	}
	if workers < 1 {
		workers = 1
	}

	p := pool.New().WithMaxGoroutines(workers)
	for idx := range rawLaunches {
		i := idx
		p.Go(func() {
			raw := rawLaunches[i]

			var rocket *entity.RawRocket
			if raw.Rocket != "" {
				r, err := s.provider.FetchRocket(ctx, raw.Rocket)
				if err != nil {
					s.logger.Warn("Rocket lookup failed, using placeholder",
						"launchId", raw.ID, "rocketId", raw.Rocket, "error", err)
					s.countError("fetch_rocket")
				} else {
					rocket = r
				}
			}

			var pad *entity.RawLaunchpad
			if raw.Launchpad != "" {
				lp, err := s.provider.FetchLaunchpad(ctx, raw.Launchpad)
				if err != nil {
					s.logger.Warn("Launchpad lookup failed, using placeholder",
						"launchId", raw.ID, "launchpadId", raw.Launchpad, "error", err)
					s.countError("fetch_launchpad")
				} else {
					pad = lp
				}
			}

			launch, err := Denormalize(raw, rocket, pad)
			if err != nil {
				s.logger.Error("Dropping malformed launch record", "error", err)
				s.countError("transform")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			slots[i] = slot{launch: launch, ok: true}
		})
	}
	p.Wait()

	launches := make([]entity.Launch, 0, len(slots))
	for i := range slots {
		if slots[i].ok {
			launches = append(launches, slots[i].launch)
		}
	}
	return launches, failed
}

func (s *LaunchSyncer) fail(result entity.SyncRunResult, err error) entity.SyncRunResult {
	result.Outcome = entity.OutcomeFailed
	result.Error = err.Error()
	return result
}

func (s *LaunchSyncer) countError(operation string) {
	if s.metrics != nil {
		s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
