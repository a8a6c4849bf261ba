package signin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/google/uuid"
)

// Service runs parse then aggregate for one upload batch.
type Service struct {
	mapping    Mapping
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a sign-in service. mapping is the default used when a
// request carries none; activities and logger may be nil.
func NewService(mapping Mapping, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{mapping: mapping.WithDefaults(), activities: activities, logger: logger}
}

// SummarizeRequest describes one upload batch.
type SummarizeRequest struct {
	Sources []Source
	Mapping *Mapping
}

// Report is the result of one summarize run. Records is kept for callers
// that re-aggregate and is not serialized.
type Report struct {
	RunID       string       `json:"run_id"`
	Summaries   []Summary    `json:"summaries"`
	Chart       []ChartPoint `json:"chart"`
	ParseErrors []ParseError `json:"parse_errors"`
	Span        *Span        `json:"span,omitempty"`
	Records     []Record     `json:"-"`
}

// Mapping returns the request mapping, or the service default.
func (s *Service) Mapping(override *Mapping) Mapping {
	if override == nil {
		return s.mapping
	}
	return override.WithDefaults()
}

// Summarize parses every source and aggregates the valid rows.
//
// When no valid row remains the returned error wraps ErrNoRecords and the
// report is still returned so its ParseErrors can be shown.
func (s *Service) Summarize(ctx context.Context, tenantID string, req SummarizeRequest) (*Report, error) {
	if len(req.Sources) == 0 {
		return nil, fmt.Errorf("summarize: %w", ErrNoRecords)
	}
	mapping := s.Mapping(req.Mapping)

	records, problems, err := Parse(req.Sources, mapping)
	if err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}

	report := &Report{
		RunID:       uuid.NewString(),
		ParseErrors: problems,
		Records:     records,
	}
	if report.ParseErrors == nil {
		report.ParseErrors = []ParseError{}
	}

	summaries, err := Aggregate(records, mapping.WeekScheme)
	if err != nil {
		if errors.Is(err, ErrNoRecords) {
			s.logger.Warn("no valid sign-in rows", "run_id", report.RunID, "sources", len(req.Sources), "rejected", len(problems))
		}
		return report, fmt.Errorf("aggregating records: %w", err)
	}
	span, err := SpanOf(records, mapping.WeekScheme)
	if err != nil {
		return report, fmt.Errorf("computing span: %w", err)
	}

	report.Summaries = summaries
	report.Chart = Chart(summaries)
	report.Span = &span

	s.logger.Info("summarized sign-ins",
		"run_id", report.RunID,
		"sources", len(req.Sources),
		"records", len(records),
		"rejected", len(problems),
		"rows", len(summaries),
	)

	if s.activities != nil {
		_ = s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
			RunID:        report.RunID,
			ActivityType: activity.TypeSigninsSummarized,
			Summary:      fmt.Sprintf("summarized %d sign-ins into %d rows", len(records), len(summaries)),
			Details: activity.Details(map[string]int{
				"sources":  len(req.Sources),
				"records":  len(records),
				"rejected": len(problems),
				"rows":     len(summaries),
			}),
		})
	}

	return report, nil
}
