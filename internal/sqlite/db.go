package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. It is safe to run on every start.
func (db *DB) RunMigrations() error {
	migration := `
-- Roster, one row per employee per tenant
CREATE TABLE IF NOT EXISTS employees (
    tenant_id TEXT NOT NULL,
    name_key TEXT NOT NULL,
    name TEXT NOT NULL,
    leave_name TEXT NOT NULL,
    department TEXT NOT NULL DEFAULT '',
    office TEXT NOT NULL DEFAULT '',
    required_days INTEGER NOT NULL CHECK(required_days BETWEEN 0 AND 7),
    imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (tenant_id, name_key)
);
CREATE INDEX IF NOT EXISTS idx_employees_office ON employees(tenant_id, office);
CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(tenant_id, department);

-- PTO leave days, dates stored as YYYY-MM-DD
CREATE TABLE IF NOT EXISTS leave_days (
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    leave_date TEXT NOT NULL,
    PRIMARY KEY (tenant_id, name, leave_date)
);
CREATE INDEX IF NOT EXISTS idx_leave_days_date ON leave_days(tenant_id, leave_date);

-- Last PTO sync per tenant
CREATE TABLE IF NOT EXISTS pto_syncs (
    tenant_id TEXT PRIMARY KEY,
    synced_at TIMESTAMP NOT NULL,
    days INTEGER NOT NULL DEFAULT 0
);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tenant_id TEXT NOT NULL,
    run_id TEXT NOT NULL DEFAULT '',
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tenant_activity ON activity_log(tenant_id);
CREATE INDEX IF NOT EXISTS idx_run_activity ON activity_log(run_id);
CREATE INDEX IF NOT EXISTS idx_created_at ON activity_log(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
