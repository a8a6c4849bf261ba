package attendance

import (
	"context"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
)

// EmployeeSource lists the roster.
type EmployeeSource interface {
	List(ctx context.Context, tenantID string, filter roster.Filter) ([]roster.Employee, error)
}

// LeaveSource lists leave days in a date range.
type LeaveSource interface {
	Between(ctx context.Context, tenantID string, from, to time.Time) ([]pto.Leave, error)
}

// ActivityRepository logs evaluations.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
