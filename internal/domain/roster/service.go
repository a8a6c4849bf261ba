package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/sheet"
	"github.com/google/uuid"
)

const maxRequiredDays = 7

// Service handles roster imports and lookups.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new roster service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, activities: activities, logger: logger, now: time.Now}
}

// Import replaces the tenant's roster with the rows of src. Invalid rows are
// skipped and reported; the stored roster is left untouched when no row is
// valid.
func (s *Service) Import(ctx context.Context, tenantID string, src sheet.Source) (*ImportResult, error) {
	if src.Body == nil {
		return nil, fmt.Errorf("%w: empty upload %q", ErrInvalidInput, src.Name)
	}
	table, err := sheet.Read(src.Body, src.Name)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	nameCol := table.Column(nameColumns...)
	requiredCol := table.Column(requiredColumns...)
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, nameColumns[0])
	}
	if requiredCol < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, requiredColumns[0])
	}
	leaveCol := table.Column(leaveNameColumns...)
	deptCol := table.Column(departmentColumns...)
	officeCol := table.Column(officeColumns...)

	now := s.now()
	result := &ImportResult{Rejected: []RowError{}}
	seen := make(map[string]int)
	var employees []Employee
	for _, row := range table.Rows {
		if row.Err != nil {
			result.Rejected = append(result.Rejected, RowError{Row: row.Line, Reason: "malformed row"})
			continue
		}
		name, _ := row.Cell(nameCol)
		if name == "" {
			result.Rejected = append(result.Rejected, RowError{Row: row.Line, Reason: "empty name"})
			continue
		}
		key := signin.NormalizeName(name)
		if first, dup := seen[key]; dup {
			result.Rejected = append(result.Rejected, RowError{Row: row.Line, Reason: fmt.Sprintf("duplicate of row %d", first)})
			continue
		}

		requiredDays, err := parseRequiredDays(row, requiredCol)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Row: row.Line, Reason: err.Error()})
			continue
		}

		leaveName, _ := row.Cell(leaveCol)
		if leaveName == "" {
			leaveName = name
		}
		dept, _ := row.Cell(deptCol)
		office, _ := row.Cell(officeCol)

		seen[key] = row.Line
		employees = append(employees, Employee{
			Name:         name,
			LeaveName:    leaveName,
			Department:   dept,
			Office:       office,
			RequiredDays: requiredDays,
			ImportedAt:   now,
		})
	}

	if len(employees) == 0 {
		return result, ErrEmptyRoster
	}
	if err := s.repo.Replace(ctx, tenantID, employees); err != nil {
		return nil, fmt.Errorf("replacing roster: %w", err)
	}
	result.Imported = len(employees)

	s.logger.Info("imported roster", "tenant_id", tenantID, "source", src.Name, "imported", result.Imported, "rejected", len(result.Rejected))
	if s.activities != nil {
		_ = s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
			RunID:        uuid.NewString(),
			ActivityType: activity.TypeRosterImported,
			Summary:      fmt.Sprintf("imported %d employees from %s", result.Imported, src.Name),
			Details:      activity.Details(map[string]int{"imported": result.Imported, "rejected": len(result.Rejected)}),
		})
	}
	return result, nil
}

// List returns roster entries matching filter.
func (s *Service) List(ctx context.Context, tenantID string, filter Filter) ([]Employee, error) {
	employees, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	return employees, nil
}

func parseRequiredDays(row sheet.Row, col int) (int, error) {
	raw, _ := row.Cell(col)
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		// Spreadsheet exports often write whole numbers as "3.0".
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("required days %q is not a whole number", raw)
		}
		days = int(f)
	}
	if days < 0 || days > maxRequiredDays {
		return 0, fmt.Errorf("required days %d out of range 0-%d", days, maxRequiredDays)
	}
	return days, nil
}
