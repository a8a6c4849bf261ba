package signin

import (
	"context"

	"github.com/ganot/signin-mcp/internal/domain/activity"
)

// ActivityRepository logs summarize runs.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
