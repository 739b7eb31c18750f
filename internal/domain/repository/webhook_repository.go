package repository

import (
	"context"

	"launchsync-service/internal/domain/entity"
)

// WebhookConfigRepository reads the user-managed webhook configuration.
// The URL can change at any time, so callers must read it at delivery
// time instead of caching it across runs.
type WebhookConfigRepository interface {
	// GetURL returns the configured webhook URL, or "" when none is set.
	GetURL(ctx context.Context) (string, error)
}

// LaunchNotifier delivers one outbound message per newly observed launch.
type LaunchNotifier interface {
	// Notify sends a notification for the launch. The bool reports whether
	// a delivery was actually attempted; it is false when no webhook URL
	// is configured.
	Notify(ctx context.Context, launch *entity.Launch) (bool, error)
}
