package usecase

import (
	"context"
	"fmt"
	"math"

	"launchsync-service/internal/domain/entity"
	"launchsync-service/internal/domain/repository"
)

// TimeBucket is the resolution for launch counts over time.
type TimeBucket string

const (
	BucketMonth TimeBucket = "month"
	BucketYear  TimeBucket = "year"
)

// StatsCalculator computes read-side aggregations over the persisted
// launches for the dashboard. It only reads the store.
type StatsCalculator struct {
	launchRepo repository.LaunchRepository
}

// NewStatsCalculator creates a new stats calculator
func NewStatsCalculator(launchRepo repository.LaunchRepository) *StatsCalculator {
	return &StatsCalculator{launchRepo: launchRepo}
}

// RocketSuccessRates returns the success percentage per rocket.
func (s *StatsCalculator) RocketSuccessRates(ctx context.Context) (map[string]float64, error) {
	launches, err := s.launchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RocketSuccessRates(launches), nil
}

// CountByLaunchpad returns launch counts per launchpad name.
func (s *StatsCalculator) CountByLaunchpad(ctx context.Context) (map[string]int, error) {
	launches, err := s.launchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return CountBy(launches, func(l entity.Launch) string { return l.LaunchpadName }), nil
}

// LaunchesOverTime returns launch counts per month or year.
func (s *StatsCalculator) LaunchesOverTime(ctx context.Context, bucket TimeBucket) (map[string]int, error) {
	launches, err := s.launchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return TimeBucketCounts(launches, bucket), nil
}

// RocketSuccessRates calculates the success rate for each rocket as a
// percentage rounded to two decimals. Launches whose outcome is not yet
// known are excluded; rockets with no decided launches are omitted.
func RocketSuccessRates(launches []entity.Launch) map[string]float64 {
	total := make(map[string]int)
	succeeded := make(map[string]int)
	for _, l := range launches {
		if l.RocketName == "" || l.Success == nil {
			continue
		}
		total[l.RocketName]++
		if *l.Success {
			succeeded[l.RocketName]++
		}
	}

	rates := make(map[string]float64, len(total))
	for rocket, n := range total {
		rate := float64(succeeded[rocket]) / float64(n) * 100
		rates[rocket] = math.Round(rate*100) / 100
	}
	return rates
}

// CountBy counts launches per value of the key function, skipping
// launches whose key is empty.
func CountBy(launches []entity.Launch, key func(entity.Launch) string) map[string]int {
	counts := make(map[string]int)
	for _, l := range launches {
		k := key(l)
		if k == "" {
			continue
		}
		counts[k]++
	}
	return counts
}

// TimeBucketCounts counts launches per calendar bucket ("2023-01" for
// months, "2023" for years). Launches without a date are skipped.
func TimeBucketCounts(launches []entity.Launch, bucket TimeBucket) map[string]int {
	counts := make(map[string]int)
	for _, l := range launches {
		if l.LaunchDate == nil {
			continue
		}
		date := l.LaunchDate.UTC()
		var k string
		switch bucket {
		case BucketYear:
			k = fmt.Sprintf("%04d", date.Year())
		default:
			k = fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
		}
		counts[k]++
	}
	return counts
}
