package repository

import (
	"context"

	"launchsync-service/internal/domain/entity"
)

// LaunchRepository defines the interface for launch persistence
type LaunchRepository interface {
	// Upsert replaces the document stored under the launch id, inserting
	// it if absent. Re-applying an unchanged launch is a no-op in effect.
	Upsert(ctx context.Context, launch *entity.Launch) error
	// ListKnownIDs returns every launch id currently in the store.
	ListKnownIDs(ctx context.Context) (map[string]struct{}, error)
	// ListAll returns every persisted launch.
	ListAll(ctx context.Context) ([]entity.Launch, error)
}
