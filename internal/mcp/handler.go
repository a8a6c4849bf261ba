package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/sheet"
)

const (
	maxFiles     = 20
	maxFileBytes = 10 << 20
	defaultLimit = 20
	maxLimit     = 200
)

// SigninService defines sign-in operations needed by MCP.
type SigninService interface {
	Summarize(ctx context.Context, tenantID string, req signin.SummarizeRequest) (*signin.Report, error)
}

// ComplianceService defines compliance operations needed by MCP.
type ComplianceService interface {
	Evaluate(ctx context.Context, tenantID string, req attendance.EvaluateRequest) (*attendance.Report, error)
}

// RosterService defines roster operations needed by MCP.
type RosterService interface {
	Import(ctx context.Context, tenantID string, src sheet.Source) (*roster.ImportResult, error)
	List(ctx context.Context, tenantID string, filter roster.Filter) ([]roster.Employee, error)
}

// PTOService defines PTO calendar operations needed by MCP.
type PTOService interface {
	Sync(ctx context.Context, tenantID string, force bool) (*pto.SyncResult, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Handler runs MCP tool calls against the domain services.
type Handler struct {
	signins    SigninService
	compliance ComplianceService
	roster     RosterService
	pto        PTOService
	activity   ActivityService
	logger     *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		signins:    services.Signins,
		compliance: services.Compliance,
		roster:     services.Roster,
		pto:        services.PTO,
		activity:   services.Activity,
		logger:     logger,
	}
}

// SummarizeSignins aggregates the uploaded sheets per employee and week.
func (h *Handler) SummarizeSignins(ctx context.Context, tenantID string, req SummarizeSigninsParams) (SummarizeSigninsResponse, error) {
	sources, err := decodeFiles(req.Files)
	if err != nil {
		return SummarizeSigninsResponse{}, mapError(err)
	}
	report, err := h.signins.Summarize(ctx, tenantID, signin.SummarizeRequest{
		Sources: sources,
		Mapping: req.Mapping.toMapping(),
	})
	if err != nil {
		return SummarizeSigninsResponse{}, withParseErrors(err, report)
	}
	return toSummarizeResponse(report), nil
}

// WeeklyCompliance checks the roster against one week of sign-ins.
func (h *Handler) WeeklyCompliance(ctx context.Context, tenantID string, req WeeklyComplianceParams) (WeeklyComplianceResponse, error) {
	sources, err := decodeFiles(req.Files)
	if err != nil {
		return WeeklyComplianceResponse{}, mapError(err)
	}

	var synced *pto.SyncResult
	if req.SyncPTO {
		synced, err = h.pto.Sync(ctx, tenantID, false)
		if err != nil {
			return WeeklyComplianceResponse{}, mapError(err)
		}
	}

	report, err := h.compliance.Evaluate(ctx, tenantID, attendance.EvaluateRequest{
		Sources: sources,
		Mapping: req.Mapping.toMapping(),
		Filter: attendance.Filter{
			Status:   attendance.Status(strings.ToUpper(req.Status)),
			Office:   req.Office,
			NoSignin: req.NoSignin,
			PTO:      strings.ToLower(req.PTO),
		},
	})
	if err != nil {
		return WeeklyComplianceResponse{}, mapError(err)
	}

	resp := toComplianceResponse(report)
	if synced != nil {
		resp.PTOSync = toSyncResponse(synced)
	}
	return resp, nil
}

// ImportRoster replaces the stored roster.
func (h *Handler) ImportRoster(ctx context.Context, tenantID string, req ImportRosterParams) (ImportRosterResponse, error) {
	sources, err := decodeFiles([]FileInput{req.File})
	if err != nil {
		return ImportRosterResponse{}, mapError(err)
	}
	result, err := h.roster.Import(ctx, tenantID, sources[0])
	if err != nil {
		apiErr := MapError(err)
		if apiErr == nil {
			return ImportRosterResponse{}, err
		}
		if result != nil {
			apiErr.Details = map[string]any{"rejected": toImportResponse(result).Rejected}
		}
		return ImportRosterResponse{}, apiErr
	}
	return toImportResponse(result), nil
}

// ListRoster lists the stored roster.
func (h *Handler) ListRoster(ctx context.Context, tenantID string, req ListRosterParams) (ListRosterResponse, error) {
	employees, err := h.roster.List(ctx, tenantID, roster.Filter{Office: req.Office, Department: req.Department})
	if err != nil {
		return ListRosterResponse{}, mapError(err)
	}
	return ListRosterResponse{Employees: toEmployees(employees), Count: len(employees)}, nil
}

// SyncPTO refreshes the stored PTO calendar.
func (h *Handler) SyncPTO(ctx context.Context, tenantID string, req SyncPTOParams) (SyncPTOResponse, error) {
	result, err := h.pto.Sync(ctx, tenantID, req.Force)
	if err != nil {
		return SyncPTOResponse{}, mapError(err)
	}
	return *toSyncResponse(result), nil
}

// GetRecentActivity lists recent runs, newest first.
func (h *Handler) GetRecentActivity(ctx context.Context, tenantID string, req GetRecentActivityParams) (GetRecentActivityResponse, error) {
	opts := activity.ListActivityOptions{RunID: req.RunID, Limit: req.Limit}
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	if req.Type != "" {
		activityType := activity.ActivityType(req.Type)
		opts.ActivityType = &activityType
	}
	entries, err := h.activity.GetRecentActivity(ctx, tenantID, opts)
	if err != nil {
		return GetRecentActivityResponse{}, mapError(err)
	}
	return GetRecentActivityResponse{Entries: toActivity(entries)}, nil
}

// withParseErrors attaches rejected rows to a NO_RECORDS error.
func withParseErrors(err error, report *signin.Report) error {
	apiErr := MapError(err)
	if apiErr == nil {
		return err
	}
	if report != nil && errors.Is(err, signin.ErrNoRecords) {
		apiErr.Details = map[string]any{"parse_errors": toParseErrors(report.ParseErrors)}
	}
	return apiErr
}

func decodeFiles(files []FileInput) ([]sheet.Source, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}
	if len(files) > maxFiles {
		return nil, fmt.Errorf("%w: at most %d files per call", ErrInvalidInput, maxFiles)
	}

	sources := make([]sheet.Source, 0, len(files))
	for i, f := range files {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = fmt.Sprintf("upload-%d.csv", i+1)
		}
		name = filepath.Base(name)

		var data []byte
		switch strings.ToLower(strings.TrimSpace(f.Encoding)) {
		case "", encodingText:
			data = []byte(f.Content)
		case encodingBase64:
			decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(f.Content))
			if err != nil {
				return nil, fmt.Errorf("%w: file %q is not valid base64", ErrInvalidInput, name)
			}
			data = decoded
		default:
			return nil, fmt.Errorf("%w: unknown encoding %q for file %q", ErrInvalidInput, f.Encoding, name)
		}
		if len(data) > maxFileBytes {
			return nil, fmt.Errorf("%w: file %q exceeds %d bytes", ErrInvalidInput, name, maxFileBytes)
		}
		sources = append(sources, sheet.Source{Name: name, Body: strings.NewReader(string(data))})
	}
	return sources, nil
}
