package pto

import (
	"context"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
)

// Repository provides persistence for synced leave days.
type Repository interface {
	// Replace swaps the tenant's leave days for leaves and records syncedAt.
	Replace(ctx context.Context, tenantID string, leaves []Leave, syncedAt time.Time) error
	// Between lists leave days with from <= Date <= to, ordered by date then name.
	Between(ctx context.Context, tenantID string, from, to time.Time) ([]Leave, error)
	// LastSynced returns repository.ErrNotFound when the tenant never synced.
	LastSynced(ctx context.Context, tenantID string) (time.Time, error)
}

// Fetcher retrieves the upstream calendar.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Request, error)
}

// ActivityRepository logs syncs.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
