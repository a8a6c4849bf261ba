package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
)

// ActivityRepository stores the run log in activity_log.
type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log appends entry and fills in its ID, TenantID and CreatedAt.
func (r *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (tenant_id, run_id, activity_type, summary, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tenantID, entry.RunID, entry.ActivityType, entry.Summary, entry.Details, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}
	entry.TenantID = tenantID
	return nil
}

// List returns the tenant's entries, newest first. Entries logged within the
// same instant keep insertion order reversed.
func (r *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	where := []string{"tenant_id = ?"}
	args := []any{tenantID}
	if opts.RunID != "" {
		where = append(where, "run_id = ?")
		args = append(args, opts.RunID)
	}
	if opts.ActivityType != nil {
		where = append(where, "activity_type = ?")
		args = append(args, *opts.ActivityType)
	}

	var query strings.Builder
	query.WriteString(`SELECT id, tenant_id, run_id, activity_type, summary, COALESCE(details, ''), created_at
		FROM activity_log WHERE `)
	query.WriteString(strings.Join(where, " AND "))
	query.WriteString(" ORDER BY created_at DESC, id DESC")

	switch {
	case opts.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	case opts.Offset > 0:
		// SQLite needs a LIMIT before OFFSET.
		query.WriteString(" LIMIT -1")
	}
	if opts.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var e activity.ActivityEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.RunID, &e.ActivityType, &e.Summary, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}
