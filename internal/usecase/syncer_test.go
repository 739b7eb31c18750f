package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu          sync.Mutex
	launches    []entity.RawLaunch
	launchesErr error
	rockets     map[string]*entity.RawRocket
	pads        map[string]*entity.RawLaunchpad
	rocketErrs  map[string]error
	fetchGate   chan struct{}
	fetchCalls  int
}

func (p *fakeProvider) FetchLaunches(ctx context.Context) ([]entity.RawLaunch, error) {
	if p.fetchGate != nil {
		<-p.fetchGate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetchCalls++
	if p.launchesErr != nil {
		return nil, p.launchesErr
	}
	return p.launches, nil
}

func (p *fakeProvider) FetchRocket(ctx context.Context, id string) (*entity.RawRocket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err, ok := p.rocketErrs[id]; ok {
		return nil, err
	}
	if r, ok := p.rockets[id]; ok {
		return r, nil
	}
	return nil, errors.New("rocket not found")
}

func (p *fakeProvider) FetchLaunchpad(ctx context.Context, id string) (*entity.RawLaunchpad, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if lp, ok := p.pads[id]; ok {
		return lp, nil
	}
	return nil, errors.New("launchpad not found")
}

type fakeLaunchRepo struct {
	mu         sync.Mutex
	docs       map[string]entity.Launch
	failUpsert map[string]error
	listErr    error
}

func newFakeLaunchRepo() *fakeLaunchRepo {
	return &fakeLaunchRepo{docs: make(map[string]entity.Launch)}
}

func (r *fakeLaunchRepo) Upsert(ctx context.Context, launch *entity.Launch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failUpsert[launch.ID]; ok {
		return err
	}
	r.docs[launch.ID] = *launch
	return nil
}

func (r *fakeLaunchRepo) ListKnownIDs(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	ids := make(map[string]struct{}, len(r.docs))
	for id := range r.docs {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (r *fakeLaunchRepo) ListAll(ctx context.Context) ([]entity.Launch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Launch, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	return out, nil
}

type fakeNotifier struct {
	mu           sync.Mutex
	unconfigured bool
	fail         map[string]error
	notified     []string
}

func (n *fakeNotifier) Notify(ctx context.Context, launch *entity.Launch) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.unconfigured {
		return false, nil
	}
	if err, ok := n.fail[launch.ID]; ok {
		return false, err
	}
	n.notified = append(n.notified, launch.ID)
	return true, nil
}

func newTestSyncer(provider *fakeProvider, repo *fakeLaunchRepo, notifier *fakeNotifier) *LaunchSyncer {
	return NewLaunchSyncer(provider, repo, notifier, logger.NewNop(), nil, 4)
}

func singleLaunchProvider() *fakeProvider {
	return &fakeProvider{
		launches: []entity.RawLaunch{
			{ID: "L1", Name: "Demo Flight", Rocket: "R1", Launchpad: "P1"},
		},
		rockets: map[string]*entity.RawRocket{"R1": {ID: "R1", Name: "Falcon 1"}},
		pads:    map[string]*entity.RawLaunchpad{"P1": {ID: "P1", Name: "Kwaj", FullName: "Omelek Island"}},
	}
}

func TestRunOnceEndToEnd(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.New)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, 0, result.Failed)

	require.Contains(t, repo.docs, "L1")
	stored := repo.docs["L1"]
	assert.Equal(t, "Demo Flight", stored.Name)
	assert.Equal(t, "Falcon 1", stored.RocketName)
	assert.Equal(t, "Kwaj", stored.LaunchpadName)
	assert.Equal(t, "Omelek Island", stored.LaunchpadSite)
	assert.Nil(t, stored.Success)

	assert.Equal(t, []string{"L1"}, notifier.notified)

	// A second run over the same provider data finds nothing new.
	result = syncer.RunOnce(context.Background(), nil)
	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 0, result.New)
	assert.Equal(t, 0, result.Notified)
	assert.Len(t, notifier.notified, 1)
	assert.Len(t, repo.docs, 1)
}

func TestRunOnceReportsAllLaunchesNewInSameRun(t *testing.T) {
	provider := &fakeProvider{
		launches: []entity.RawLaunch{{ID: "C"}, {ID: "D"}},
	}
	repo := newFakeLaunchRepo()
	repo.docs["A"] = entity.Launch{ID: "A"}
	repo.docs["B"] = entity.Launch{ID: "B"}
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	// Both launches appearing in the same run are reported; neither
	// masks the other.
	assert.Equal(t, 2, result.New)
	assert.ElementsMatch(t, []string{"C", "D"}, notifier.notified)
}

func TestRunOncePartialUpsertFailureIsolated(t *testing.T) {
	provider := &fakeProvider{
		launches: []entity.RawLaunch{{ID: "X"}, {ID: "Y"}, {ID: "Z"}},
	}
	repo := newFakeLaunchRepo()
	repo.failUpsert = map[string]error{"X": errors.New("write failed")}
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 1, result.Failed)
	assert.NotContains(t, repo.docs, "X")
	assert.Contains(t, repo.docs, "Y")
	assert.Contains(t, repo.docs, "Z")

	// X is still counted as new, but only durably stored launches are
	// notified.
	assert.Equal(t, 3, result.New)
	assert.ElementsMatch(t, []string{"Y", "Z"}, notifier.notified)
}

func TestRunOnceMalformedRecordDropped(t *testing.T) {
	provider := &fakeProvider{
		launches: []entity.RawLaunch{{ID: ""}, {ID: "L2", Name: "Good"}},
	}
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, repo.docs, 1)
	assert.Contains(t, repo.docs, "L2")
}

func TestRunOnceNotificationFailureDoesNotUnpersist(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{fail: map[string]error{"L1": errors.New("webhook down")}}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 1, result.NotifyFailed)
	assert.Equal(t, 0, result.Notified)
	assert.Contains(t, repo.docs, "L1")

	// The launch is known now, so the next run does not retry the
	// failed delivery.
	notifier.fail = nil
	result = syncer.RunOnce(context.Background(), nil)
	assert.Equal(t, 0, result.New)
	assert.Empty(t, notifier.notified)
}

func TestRunOnceUnconfiguredWebhookCountsNothing(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{unconfigured: true}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, 1, result.New)
	assert.Equal(t, 0, result.Notified)
	assert.Equal(t, 0, result.NotifyFailed)
}

func TestRunOnceSuccessResolvesAcrossRuns(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)
	require.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Nil(t, repo.docs["L1"].Success)

	provider.mu.Lock()
	provider.launches[0].Success = boolPtr(true)
	provider.mu.Unlock()

	result = syncer.RunOnce(context.Background(), nil)
	require.Equal(t, entity.OutcomeSucceeded, result.Outcome)

	assert.Len(t, repo.docs, 1)
	require.NotNil(t, repo.docs["L1"].Success)
	assert.True(t, *repo.docs["L1"].Success)
}

func TestRunOnceRocketLookupFailureDegradesToPlaceholder(t *testing.T) {
	provider := singleLaunchProvider()
	provider.rocketErrs = map[string]error{"R1": errors.New("timeout")}
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 0, result.Failed)
	require.Contains(t, repo.docs, "L1")
	assert.Empty(t, repo.docs["L1"].RocketName)
	assert.Equal(t, "Kwaj", repo.docs["L1"].LaunchpadName)
}

func TestRunOnceFatalOnBulkFetchFailure(t *testing.T) {
	provider := &fakeProvider{launchesErr: errors.New("provider down")}
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeFailed, result.Outcome)
	assert.Contains(t, result.Error, "provider down")
	assert.Empty(t, repo.docs)
	assert.Empty(t, notifier.notified)
}

func TestRunOnceFatalOnKnownIDsFailure(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	repo.listErr = errors.New("store down")
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	result := syncer.RunOnce(context.Background(), nil)

	assert.Equal(t, entity.OutcomeFailed, result.Outcome)
	assert.Empty(t, repo.docs)
	assert.Empty(t, notifier.notified)
}

func TestRunOncePhaseSequence(t *testing.T) {
	provider := singleLaunchProvider()
	repo := newFakeLaunchRepo()
	notifier := &fakeNotifier{}
	syncer := newTestSyncer(provider, repo, notifier)

	var phases []entity.SyncPhase
	syncer.RunOnce(context.Background(), func(p entity.SyncPhase) {
		phases = append(phases, p)
	})

	assert.Equal(t, []entity.SyncPhase{
		entity.PhaseFetching,
		entity.PhaseTransforming,
		entity.PhasePersisting,
		entity.PhaseDetecting,
		entity.PhaseNotifying,
		entity.PhaseIdle,
	}, phases)
}
