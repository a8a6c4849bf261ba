package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/repository"
)

// LeaveRepository implements pto.Repository for SQLite
type LeaveRepository struct {
	db *DB
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Replace swaps the tenant's leave days and stamps the sync time
func (r *LeaveRepository) Replace(ctx context.Context, tenantID string, leaves []pto.Leave, syncedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leave_days WHERE tenant_id = ?`, tenantID); err != nil {
		return fmt.Errorf("failed to clear leave days: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO leave_days (tenant_id, name, leave_date)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range leaves {
		if _, err := stmt.ExecContext(ctx, tenantID, l.Name, l.Date.Format(pto.DateLayout)); err != nil {
			return fmt.Errorf("failed to insert leave day: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pto_syncs (tenant_id, synced_at, days) VALUES (?, ?, ?)
		ON CONFLICT(tenant_id) DO UPDATE SET synced_at = excluded.synced_at, days = excluded.days
	`, tenantID, syncedAt.UTC(), len(leaves))
	if err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Between lists leave days from from to to inclusive, by date then name
func (r *LeaveRepository) Between(ctx context.Context, tenantID string, from, to time.Time) ([]pto.Leave, error) {
	query := `
		SELECT name, leave_date
		FROM leave_days
		WHERE tenant_id = ? AND leave_date BETWEEN ? AND ?
		ORDER BY leave_date, name
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, from.Format(pto.DateLayout), to.Format(pto.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave days: %w", err)
	}
	defer rows.Close()

	leaves := []pto.Leave{}
	for rows.Next() {
		var name, date string
		if err := rows.Scan(&name, &date); err != nil {
			return nil, fmt.Errorf("failed to scan leave day: %w", err)
		}
		day, err := time.Parse(pto.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse leave date %q: %w", date, err)
		}
		leaves = append(leaves, pto.Leave{Name: name, Date: day})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leave rows: %w", err)
	}

	return leaves, nil
}

// LastSynced returns when the tenant last synced its calendar
func (r *LeaveRepository) LastSynced(ctx context.Context, tenantID string) (time.Time, error) {
	var syncedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT synced_at FROM pto_syncs WHERE tenant_id = ?`,
		tenantID,
	).Scan(&syncedAt)

	if err == sql.ErrNoRows {
		return time.Time{}, repository.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync: %w", err)
	}

	return syncedAt, nil
}
