package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SyncRuns          *prometheus.CounterVec
	LaunchesFetched   prometheus.Counter
	NewLaunches       prometheus.Counter
	NotificationsSent prometheus.Counter
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
	SyncDuration      prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SyncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_runs_total",
			Help:      "The total number of sync runs by outcome",
		}, []string{"outcome"}),
		LaunchesFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launches_fetched_total",
			Help:      "The total number of launches fetched from the provider",
		}),
		NewLaunches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "new_launches_total",
			Help:      "The total number of newly observed launches",
		}),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of webhook notifications delivered",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cache_hits_total",
			Help:      "The total number of provider fetches served from cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cache_misses_total",
			Help:      "The total number of provider fetches that went to the network",
		}),
		SyncDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Time taken by one sync run",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
