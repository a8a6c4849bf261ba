package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/repository"
)

// EmployeeRepository implements roster.Repository for SQLite
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Replace swaps the tenant's roster for employees in one transaction
func (r *EmployeeRepository) Replace(ctx context.Context, tenantID string, employees []roster.Employee) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE tenant_id = ?`, tenantID); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (
			tenant_id, name_key, name, leave_name,
			department, office, required_days, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, emp := range employees {
		importedAt := emp.ImportedAt
		if importedAt.IsZero() {
			importedAt = time.Now()
		}
		_, err := stmt.ExecContext(ctx,
			tenantID,
			signin.NormalizeName(emp.Name),
			emp.Name,
			emp.LeaveName,
			emp.Department,
			emp.Office,
			emp.RequiredDays,
			importedAt,
		)
		switch {
		case isUniqueViolation(err):
			return fmt.Errorf("%w: duplicate employee %q", repository.ErrConflict, emp.Name)
		case isCheckViolation(err):
			return fmt.Errorf("%w: required days %d for %q", repository.ErrInvalidInput, emp.RequiredDays, emp.Name)
		case err != nil:
			return fmt.Errorf("failed to insert employee: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List returns the tenant's roster ordered by department, office and name
func (r *EmployeeRepository) List(ctx context.Context, tenantID string, filter roster.Filter) ([]roster.Employee, error) {
	query := `
		SELECT name, leave_name, department, office, required_days, imported_at
		FROM employees
		WHERE tenant_id = ?
	`
	args := []interface{}{tenantID}
	conditions := []string{}

	if filter.Office != "" {
		conditions = append(conditions, "office = ? COLLATE NOCASE")
		args = append(args, filter.Office)
	}
	if filter.Department != "" {
		conditions = append(conditions, "department = ? COLLATE NOCASE")
		args = append(args, filter.Department)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY department, office, name_key"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []roster.Employee{}
	for rows.Next() {
		var emp roster.Employee
		if err := rows.Scan(
			&emp.Name,
			&emp.LeaveName,
			&emp.Department,
			&emp.Office,
			&emp.RequiredDays,
			&emp.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}

	return employees, nil
}
