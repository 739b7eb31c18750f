package repository

import (
	"context"

	"launchsync-service/internal/domain/entity"
)

// LaunchProvider defines typed access to the external launch data source.
// Implementations return read-only snapshots and never retry; retry policy
// belongs to the scheduler's next tick.
type LaunchProvider interface {
	FetchLaunches(ctx context.Context) ([]entity.RawLaunch, error)
	FetchRocket(ctx context.Context, id string) (*entity.RawRocket, error)
	FetchLaunchpad(ctx context.Context, id string) (*entity.RawLaunchpad, error)
}
