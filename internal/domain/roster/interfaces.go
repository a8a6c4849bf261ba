package roster

import (
	"context"

	"github.com/ganot/signin-mcp/internal/domain/activity"
)

// Repository provides persistence for the roster.
type Repository interface {
	Replace(ctx context.Context, tenantID string, employees []Employee) error
	List(ctx context.Context, tenantID string, filter Filter) ([]Employee, error)
}

// ActivityRepository logs roster imports.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
