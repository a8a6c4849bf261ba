package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/google/uuid"
)

// Service evaluates a week of sign-ins against the stored roster and PTO
// calendar.
type Service struct {
	signins    *signin.Service
	employees  EmployeeSource
	leaves     LeaveSource
	activities ActivityRepository
	policy     Policy
	logger     *slog.Logger
}

// NewService creates an attendance service. leaves may be nil when no PTO
// calendar is configured.
func NewService(signins *signin.Service, employees EmployeeSource, leaves LeaveSource, activities ActivityRepository, policy Policy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		signins:    signins,
		employees:  employees,
		leaves:     leaves,
		activities: activities,
		policy:     policy,
		logger:     logger,
	}
}

// EvaluateRequest describes one weekly compliance run.
type EvaluateRequest struct {
	Sources []signin.Source
	Mapping *signin.Mapping
	Filter  Filter
}

// Report is the result of one compliance run. Rows are filtered; Chart is
// built from the unfiltered rows.
type Report struct {
	RunID       string              `json:"run_id"`
	Sheet       *Sheet              `json:"sheet"`
	Chart       []DepartmentStat    `json:"chart"`
	ParseErrors []signin.ParseError `json:"parse_errors"`
	Total       int                 `json:"total"`
}

// Evaluate parses the sources and checks the roster against them.
func (s *Service) Evaluate(ctx context.Context, tenantID string, req EvaluateRequest) (*Report, error) {
	if err := req.Filter.Validate(); err != nil {
		return nil, err
	}
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("evaluate: %w", signin.ErrNoRecords)
	}

	mapping := s.signins.Mapping(req.Mapping)
	loc, err := mapping.Location()
	if err != nil {
		return nil, err
	}
	records, problems, err := signin.Parse(req.Sources, mapping)
	if err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	if problems == nil {
		problems = []signin.ParseError{}
	}
	week, err := WeekOf(records, mapping.WeekScheme)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.List(ctx, tenantID, roster.Filter{})
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	if len(employees) == 0 {
		return nil, roster.ErrEmptyRoster
	}

	start := mapping.WeekScheme.Start(week, loc)
	var leaves []pto.Leave
	if s.leaves != nil {
		leaves, err = s.leaves.Between(ctx, tenantID, start, start.AddDate(0, 0, 6))
		if err != nil {
			return nil, fmt.Errorf("loading leave days: %w", err)
		}
	}

	sheet, err := Evaluate(Input{
		Records:   records,
		Scheme:    mapping.WeekScheme,
		Location:  loc,
		Employees: employees,
		Leaves:    leaves,
		Policy:    s.policy,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		Chart:       DepartmentChart(sheet.Rows),
		ParseErrors: problems,
		Total:       len(sheet.Rows),
	}
	sheet.Rows = req.Filter.Apply(sheet.Rows)
	report.Sheet = sheet

	missed := 0
	for _, stat := range report.Chart {
		missed += stat.Missed
	}
	s.logger.Info("evaluated weekly compliance",
		"run_id", report.RunID,
		"week", sheet.Week.String(),
		"employees", report.Total,
		"missed", missed,
		"unmatched", len(sheet.Unmatched),
	)

	if s.activities != nil {
		_ = s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
			RunID:        report.RunID,
			ActivityType: activity.TypeComplianceEvaluated,
			Summary:      fmt.Sprintf("evaluated %s: %d of %d employees missed", sheet.Week, missed, report.Total),
			Details: activity.Details(map[string]any{
				"week":      sheet.Week.String(),
				"records":   len(records),
				"rejected":  len(problems),
				"employees": report.Total,
				"missed":    missed,
				"unmatched": len(sheet.Unmatched),
			}),
		})
	}
	return report, nil
}
