package client

import (
	"context"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
	"launchsync-service/pkg/cache"
	"launchsync-service/pkg/metrics"
)

// Cache keys are operation plus argument, so a rocket and a launchpad
// sharing an id never collide.
const (
	launchesKey     = "launches:all"
	rocketKeyPrefix = "rockets:"
	padKeyPrefix    = "launchpads:"
)

// CachedClient decorates a LaunchProvider with the TTL fetch cache.
// Closely spaced scheduler ticks hit the cache instead of the network;
// consumers tolerate up-to-TTL-stale rocket and launchpad data.
type CachedClient struct {
	next    repository.LaunchProvider
	cache   *cache.TTLCache
	metrics *metrics.Metrics
}

// NewCachedClient wraps next with ttlCache.
func NewCachedClient(next repository.LaunchProvider, ttlCache *cache.TTLCache, m *metrics.Metrics) *CachedClient {
	return &CachedClient{
		next:    next,
		cache:   ttlCache,
		metrics: m,
	}
}

var _ repository.LaunchProvider = (*CachedClient)(nil)

// FetchLaunches returns the cached launch list or fetches it
func (c *CachedClient) FetchLaunches(ctx context.Context) ([]entity.RawLaunch, error) {
	v, hit, err := c.cache.Do(launchesKey, func() (interface{}, error) {
		return c.next.FetchLaunches(ctx)
	})
	if err != nil {
		return nil, err
	}
	c.observe(hit)
	return v.([]entity.RawLaunch), nil
}

// FetchRocket returns the cached rocket or fetches it
func (c *CachedClient) FetchRocket(ctx context.Context, id string) (*entity.RawRocket, error) {
	v, hit, err := c.cache.Do(rocketKeyPrefix+id, func() (interface{}, error) {
		return c.next.FetchRocket(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	c.observe(hit)
	return v.(*entity.RawRocket), nil
}

// FetchLaunchpad returns the cached launchpad or fetches it
func (c *CachedClient) FetchLaunchpad(ctx context.Context, id string) (*entity.RawLaunchpad, error) {
	v, hit, err := c.cache.Do(padKeyPrefix+id, func() (interface{}, error) {
		return c.next.FetchLaunchpad(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	c.observe(hit)
	return v.(*entity.RawLaunchpad), nil
}

func (c *CachedClient) observe(hit bool) {
	if c.metrics == nil {
		return
	}
	if hit {
		c.metrics.CacheHits.Inc()
	} else {
		c.metrics.CacheMisses.Inc()
	}
}
