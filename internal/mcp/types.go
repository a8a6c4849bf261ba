package mcp

import (
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
)

const (
	encodingText   = "text"
	encodingBase64 = "base64"
)

// FileInput is one uploaded sheet passed inline.
type FileInput struct {
	Name     string `json:"name,omitempty" jsonschema:"file name; a .xlsx extension selects the workbook reader"`
	Content  string `json:"content" jsonschema:"file content, raw text or base64"`
	Encoding string `json:"encoding,omitempty" jsonschema:"text (default) or base64"`
}

// MappingParams overrides the configured column mapping for one call.
type MappingParams struct {
	Identifier []string `json:"identifier,omitempty" jsonschema:"header candidates for the employee column"`
	Timestamp  []string `json:"timestamp,omitempty" jsonschema:"header candidates for the combined date-time column"`
	Date       []string `json:"date,omitempty" jsonschema:"header candidates for a date-only column"`
	Time       []string `json:"time,omitempty" jsonschema:"header candidates for a time-only column"`
	Layouts    []string `json:"layouts,omitempty" jsonschema:"Go time layouts tried in order"`
	TimeZone   string   `json:"timezone,omitempty" jsonschema:"IANA zone for timestamps without an offset"`
	WeekScheme string   `json:"week_scheme,omitempty" jsonschema:"iso (Monday-Sunday) or sunday (Sunday-Saturday)"`
}

type SummarizeSigninsParams struct {
	Files   []FileInput    `json:"files" jsonschema:"one or more sign-in sheets"`
	Mapping *MappingParams `json:"mapping,omitempty"`
}

type WeeklyComplianceParams struct {
	Files    []FileInput    `json:"files" jsonschema:"sign-in sheets covering a single week"`
	Mapping  *MappingParams `json:"mapping,omitempty"`
	Status   string         `json:"status,omitempty" jsonschema:"O or X"`
	Office   string         `json:"office,omitempty"`
	NoSignin bool           `json:"no_signin,omitempty" jsonschema:"only employees with no office-day sign-in"`
	PTO      string         `json:"pto,omitempty" jsonschema:"none or used"`
	SyncPTO  bool           `json:"sync_pto,omitempty" jsonschema:"refresh the PTO calendar first"`
}

type ImportRosterParams struct {
	File FileInput `json:"file" jsonschema:"roster sheet with FULL_NAME and REQUIRED_DAYS columns"`
}

type ListRosterParams struct {
	Office     string `json:"office,omitempty"`
	Department string `json:"department,omitempty"`
}

type SyncPTOParams struct {
	Force bool `json:"force,omitempty" jsonschema:"refetch even when the stored calendar is fresh"`
}

type GetRecentActivityParams struct {
	Type  string `json:"type,omitempty" jsonschema:"roster_imported, pto_synced, signins_summarized or compliance_evaluated"`
	RunID string `json:"run_id,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type SummaryResponse struct {
	Employee    string `json:"employee"`
	Week        string `json:"week"`
	SigninCount int    `json:"signin_count"`
	FirstSignin string `json:"first_signin"`
	LastSignin  string `json:"last_signin"`
}

type ChartPointResponse struct {
	Week     string `json:"week"`
	Employee string `json:"employee"`
	Count    int    `json:"count"`
}

type ParseErrorResponse struct {
	Source int    `json:"source"`
	File   string `json:"file"`
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

type SpanResponse struct {
	First string   `json:"first"`
	Last  string   `json:"last"`
	Weeks []string `json:"weeks"`
}

type SummarizeSigninsResponse struct {
	RunID       string               `json:"run_id"`
	Summaries   []SummaryResponse    `json:"summaries"`
	Chart       []ChartPointResponse `json:"chart"`
	ParseErrors []ParseErrorResponse `json:"parse_errors"`
	Span        *SpanResponse        `json:"span,omitempty"`
}

type ComplianceRowResponse struct {
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	Office       string   `json:"office"`
	Status       string   `json:"status"`
	SigninDays   string   `json:"signin_days"`
	AbsentDays   []string `json:"absent_days"`
	PTODays      []string `json:"pto_days"`
	PTOCount     int      `json:"pto_count"`
	Present      int      `json:"present"`
	Required     int      `json:"required"`
	RequiredDays int      `json:"required_days"`
	PresentDates []string `json:"present_dates"`
	Details      string   `json:"details"`
}

type DepartmentStatResponse struct {
	Department string `json:"department"`
	Employees  int    `json:"employees"`
	Missed     int    `json:"missed"`
}

type WeeklyComplianceResponse struct {
	RunID       string                   `json:"run_id"`
	Week        string                   `json:"week"`
	WeekStart   string                   `json:"week_start"`
	WeekEnd     string                   `json:"week_end"`
	Total       int                      `json:"total"`
	Rows        []ComplianceRowResponse  `json:"rows"`
	Chart       []DepartmentStatResponse `json:"chart"`
	Unmatched   []string                 `json:"unmatched"`
	ParseErrors []ParseErrorResponse     `json:"parse_errors"`
	PTOSync     *SyncPTOResponse         `json:"pto_sync,omitempty"`
}

type RowErrorResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportRosterResponse struct {
	Imported int                `json:"imported"`
	Rejected []RowErrorResponse `json:"rejected"`
}

type EmployeeResponse struct {
	Name         string `json:"name"`
	LeaveName    string `json:"leave_name"`
	Department   string `json:"department"`
	Office       string `json:"office"`
	RequiredDays int    `json:"required_days"`
	ImportedAt   string `json:"imported_at"`
}

type ListRosterResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Count     int                `json:"count"`
}

type SyncPTOResponse struct {
	Requests int    `json:"requests"`
	Days     int    `json:"days"`
	Invalid  int    `json:"invalid_dates"`
	SyncedAt string `json:"synced_at"`
	Cached   bool   `json:"cached"`
}

type ActivityResponse struct {
	ID        int64  `json:"id"`
	RunID     string `json:"run_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

type GetRecentActivityResponse struct {
	Entries []ActivityResponse `json:"entries"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func (p *MappingParams) toMapping() *signin.Mapping {
	if p == nil {
		return nil
	}
	return &signin.Mapping{
		Identifier: p.Identifier,
		Timestamp:  p.Timestamp,
		Date:       p.Date,
		Time:       p.Time,
		Layouts:    p.Layouts,
		TimeZone:   p.TimeZone,
		WeekScheme: signin.WeekScheme(p.WeekScheme),
	}
}

func toParseErrors(problems []signin.ParseError) []ParseErrorResponse {
	out := make([]ParseErrorResponse, 0, len(problems))
	for _, p := range problems {
		out = append(out, ParseErrorResponse{
			Source: p.Source,
			File:   p.Name,
			Row:    p.Row,
			Column: p.Column,
			Value:  p.Value,
			Reason: string(p.Reason),
		})
	}
	return out
}

func toSummarizeResponse(report *signin.Report) SummarizeSigninsResponse {
	resp := SummarizeSigninsResponse{
		RunID:       report.RunID,
		Summaries:   make([]SummaryResponse, 0, len(report.Summaries)),
		Chart:       make([]ChartPointResponse, 0, len(report.Chart)),
		ParseErrors: toParseErrors(report.ParseErrors),
	}
	for _, s := range report.Summaries {
		resp.Summaries = append(resp.Summaries, SummaryResponse{
			Employee:    s.Employee,
			Week:        s.Week.String(),
			SigninCount: s.Count,
			FirstSignin: formatTime(s.FirstSignin),
			LastSignin:  formatTime(s.LastSignin),
		})
	}
	for _, p := range report.Chart {
		resp.Chart = append(resp.Chart, ChartPointResponse{Week: p.Week.String(), Employee: p.Employee, Count: p.Count})
	}
	if report.Span != nil {
		span := &SpanResponse{
			First: formatTime(report.Span.First),
			Last:  formatTime(report.Span.Last),
			Weeks: make([]string, 0, len(report.Span.Weeks)),
		}
		for _, w := range report.Span.Weeks {
			span.Weeks = append(span.Weeks, w.String())
		}
		resp.Span = span
	}
	return resp
}

func toComplianceResponse(report *attendance.Report) WeeklyComplianceResponse {
	sheet := report.Sheet
	resp := WeeklyComplianceResponse{
		RunID:       report.RunID,
		Week:        sheet.Week.String(),
		WeekStart:   formatDate(sheet.WeekStart),
		WeekEnd:     formatDate(sheet.WeekEnd),
		Total:       report.Total,
		Rows:        make([]ComplianceRowResponse, 0, len(sheet.Rows)),
		Chart:       make([]DepartmentStatResponse, 0, len(report.Chart)),
		Unmatched:   append([]string{}, sheet.Unmatched...),
		ParseErrors: toParseErrors(report.ParseErrors),
	}
	for _, r := range sheet.Rows {
		resp.Rows = append(resp.Rows, ComplianceRowResponse{
			Name:         r.Name,
			Department:   r.Department,
			Office:       r.Office,
			Status:       string(r.Status),
			SigninDays:   r.SigninLabel(),
			AbsentDays:   r.AbsentDays,
			PTODays:      r.PTODays,
			PTOCount:     r.PTOCount,
			Present:      r.Present,
			Required:     r.Required,
			RequiredDays: r.RequiredDays,
			PresentDates: r.PresentDates,
			Details:      r.Details,
		})
	}
	for _, s := range report.Chart {
		resp.Chart = append(resp.Chart, DepartmentStatResponse(s))
	}
	return resp
}

func toImportResponse(result *roster.ImportResult) ImportRosterResponse {
	resp := ImportRosterResponse{Imported: result.Imported, Rejected: make([]RowErrorResponse, 0, len(result.Rejected))}
	for _, r := range result.Rejected {
		resp.Rejected = append(resp.Rejected, RowErrorResponse(r))
	}
	return resp
}

func toEmployees(employees []roster.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeResponse{
			Name:         e.Name,
			LeaveName:    e.LeaveName,
			Department:   e.Department,
			Office:       e.Office,
			RequiredDays: e.RequiredDays,
			ImportedAt:   formatTime(e.ImportedAt),
		})
	}
	return out
}

func toSyncResponse(result *pto.SyncResult) *SyncPTOResponse {
	return &SyncPTOResponse{
		Requests: result.Requests,
		Days:     result.Days,
		Invalid:  result.Invalid,
		SyncedAt: formatTime(result.SyncedAt),
		Cached:   result.Cached,
	}
}

func toActivity(entries []activity.ActivityEntry) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityResponse{
			ID:        e.ID,
			RunID:     e.RunID,
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			Details:   e.Details,
			CreatedAt: formatTime(e.CreatedAt),
		})
	}
	return out
}
