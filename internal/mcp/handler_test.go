package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/sheet"
	"github.com/stretchr/testify/require"
)

type signinStub struct {
	summarizeFn func(context.Context, string, signin.SummarizeRequest) (*signin.Report, error)
}

func (s signinStub) Summarize(ctx context.Context, tenantID string, req signin.SummarizeRequest) (*signin.Report, error) {
	return s.summarizeFn(ctx, tenantID, req)
}

type complianceStub struct {
	evaluateFn func(context.Context, string, attendance.EvaluateRequest) (*attendance.Report, error)
}

func (c complianceStub) Evaluate(ctx context.Context, tenantID string, req attendance.EvaluateRequest) (*attendance.Report, error) {
	return c.evaluateFn(ctx, tenantID, req)
}

type rosterStub struct {
	importFn func(context.Context, string, sheet.Source) (*roster.ImportResult, error)
	listFn   func(context.Context, string, roster.Filter) ([]roster.Employee, error)
}

func (r rosterStub) Import(ctx context.Context, tenantID string, src sheet.Source) (*roster.ImportResult, error) {
	return r.importFn(ctx, tenantID, src)
}
func (r rosterStub) List(ctx context.Context, tenantID string, filter roster.Filter) ([]roster.Employee, error) {
	return r.listFn(ctx, tenantID, filter)
}

type ptoStub struct {
	syncFn func(context.Context, string, bool) (*pto.SyncResult, error)
}

func (p ptoStub) Sync(ctx context.Context, tenantID string, force bool) (*pto.SyncResult, error) {
	return p.syncFn(ctx, tenantID, force)
}

type activityStub struct {
	listFn func(context.Context, string, activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

func (a activityStub) GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return a.listFn(ctx, tenantID, opts)
}

func readSource(t *testing.T, src sheet.Source) string {
	t.Helper()
	data, err := io.ReadAll(src.Body)
	require.NoError(t, err)
	return string(data)
}

func TestHandler_SummarizeSignins(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2024, time.January, 2, 8, 0, 0, 0, time.UTC)
	week := signin.Week{Year: 2024, Number: 1}

	var got signin.SummarizeRequest
	handler := NewHandler(Services{
		Signins: signinStub{summarizeFn: func(_ context.Context, tenantID string, req signin.SummarizeRequest) (*signin.Report, error) {
			require.Equal(t, "tenant1", tenantID)
			got = req
			return &signin.Report{
				RunID:       "run-1",
				Summaries:   []signin.Summary{{Employee: "Alice", Week: week, Count: 2, FirstSignin: first, LastSignin: first.Add(24 * time.Hour)}},
				Chart:       []signin.ChartPoint{{Week: week, Employee: "Alice", Count: 2}},
				ParseErrors: []signin.ParseError{{Source: 0, Name: "week.csv", Row: 4, Column: "datetime", Value: "soon", Reason: signin.ReasonBadTimestamp}},
				Span:        &signin.Span{First: first, Last: first.Add(24 * time.Hour), Weeks: []signin.Week{week}},
			}, nil
		}},
	}, nil)

	resp, err := handler.SummarizeSignins(ctx, "tenant1", SummarizeSigninsParams{
		Files: []FileInput{
			{Name: "week.csv", Content: "name,datetime\nAlice,2024-01-02T08:00\n"},
			{Content: base64.StdEncoding.EncodeToString([]byte("name,datetime\n")), Encoding: "base64"},
		},
		Mapping: &MappingParams{Identifier: []string{"employee"}, WeekScheme: "sunday"},
	})
	require.NoError(t, err)

	require.Len(t, got.Sources, 2)
	require.Equal(t, "week.csv", got.Sources[0].Name)
	require.Equal(t, "upload-2.csv", got.Sources[1].Name)
	require.Equal(t, "name,datetime\n", readSource(t, got.Sources[1]))
	require.NotNil(t, got.Mapping)
	require.Equal(t, []string{"employee"}, got.Mapping.Identifier)
	require.Equal(t, signin.WeekSunday, got.Mapping.WeekScheme)

	require.Equal(t, "run-1", resp.RunID)
	require.Len(t, resp.Summaries, 1)
	require.Equal(t, SummaryResponse{
		Employee:    "Alice",
		Week:        "2024-W01",
		SigninCount: 2,
		FirstSignin: "2024-01-02T08:00:00Z",
		LastSignin:  "2024-01-03T08:00:00Z",
	}, resp.Summaries[0])
	require.Equal(t, []ChartPointResponse{{Week: "2024-W01", Employee: "Alice", Count: 2}}, resp.Chart)
	require.Equal(t, "unparsable_timestamp", resp.ParseErrors[0].Reason)
	require.Equal(t, []string{"2024-W01"}, resp.Span.Weeks)
}

func TestHandler_SummarizeSignins_NoRecordsCarriesParseErrors(t *testing.T) {
	handler := NewHandler(Services{
		Signins: signinStub{summarizeFn: func(context.Context, string, signin.SummarizeRequest) (*signin.Report, error) {
			report := &signin.Report{ParseErrors: []signin.ParseError{{Name: "a.csv", Row: 2, Reason: signin.ReasonEmptyIdentifier}}}
			return report, fmt.Errorf("aggregating records: %w", signin.ErrNoRecords)
		}},
	}, nil)

	_, err := handler.SummarizeSignins(context.Background(), "t", SummarizeSigninsParams{Files: []FileInput{{Name: "a.csv", Content: "name,datetime\n,x\n"}}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "NO_RECORDS", apiErr.Code)
	details, ok := apiErr.Details.(map[string]any)
	require.True(t, ok)
	require.Len(t, details["parse_errors"], 1)
}

func TestHandler_RejectsBadFiles(t *testing.T) {
	handler := NewHandler(Services{}, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		files []FileInput
	}{
		{name: "none", files: nil},
		{name: "bad base64", files: []FileInput{{Name: "a.xlsx", Content: "%%%", Encoding: "base64"}}},
		{name: "unknown encoding", files: []FileInput{{Name: "a.csv", Content: "x", Encoding: "gzip"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.SummarizeSignins(ctx, "t", SummarizeSigninsParams{Files: tc.files})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, "INVALID_INPUT", apiErr.Code)
		})
	}
}

func TestHandler_WeeklyCompliance(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	synced := false

	var got attendance.EvaluateRequest
	handler := NewHandler(Services{
		PTO: ptoStub{syncFn: func(_ context.Context, _ string, force bool) (*pto.SyncResult, error) {
			require.False(t, force)
			synced = true
			return &pto.SyncResult{Requests: 2, Days: 3, SyncedAt: start}, nil
		}},
		Compliance: complianceStub{evaluateFn: func(_ context.Context, _ string, req attendance.EvaluateRequest) (*attendance.Report, error) {
			got = req
			return &attendance.Report{
				RunID: "run-2",
				Sheet: &attendance.Sheet{
					Week:      signin.Week{Year: 2024, Number: 1},
					WeekStart: start,
					WeekEnd:   start.AddDate(0, 0, 6),
					Rows: []attendance.Row{{
						Name: "Bob", Department: "Eng", Office: "NYC", Status: attendance.StatusMissed,
						RequiredDays: 3, Required: 3, Present: 1,
						SigninDays: []string{"Tue"}, AbsentDays: []string{"Wed", "Thu"}, PTODays: []string{},
						PresentDates: []string{"2024-01-02"}, Details: "1 / 3 [ PTOs=0 ]",
					}},
				},
				Chart: []attendance.DepartmentStat{{Department: "Eng", Employees: 2, Missed: 1}},
				Total: 2,
			}, nil
		}},
	}, nil)

	resp, err := handler.WeeklyCompliance(ctx, "t", WeeklyComplianceParams{
		Files:   []FileInput{{Name: "week.csv", Content: "name,datetime\n"}},
		Status:  "x",
		Office:  "nyc",
		PTO:     "NONE",
		SyncPTO: true,
	})
	require.NoError(t, err)
	require.True(t, synced)

	require.Equal(t, attendance.Filter{Status: attendance.StatusMissed, Office: "nyc", PTO: attendance.PTONone}, got.Filter)
	require.Nil(t, got.Mapping)

	require.Equal(t, "2024-W01", resp.Week)
	require.Equal(t, "2024-01-01", resp.WeekStart)
	require.Equal(t, "2024-01-07", resp.WeekEnd)
	require.Equal(t, 2, resp.Total)
	require.Len(t, resp.Rows, 1)
	require.Equal(t, "X", resp.Rows[0].Status)
	require.Equal(t, []string{"Wed", "Thu"}, resp.Rows[0].AbsentDays)
	require.Equal(t, []DepartmentStatResponse{{Department: "Eng", Employees: 2, Missed: 1}}, resp.Chart)
	require.NotNil(t, resp.Unmatched)
	require.NotNil(t, resp.PTOSync)
	require.Equal(t, 3, resp.PTOSync.Days)
}

func TestHandler_WeeklyCompliance_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{err: fmt.Errorf("week: %w", attendance.ErrMultipleWeeks), code: "MULTIPLE_WEEKS"},
		{err: fmt.Errorf("loading roster: %w", roster.ErrEmptyRoster), code: "EMPTY_ROSTER"},
		{err: &signin.ConfigError{Field: "identifier", Candidates: []string{"name"}, Reason: "column not found in any source"}, code: "INVALID_MAPPING"},
		{err: fmt.Errorf("%w: status %q", attendance.ErrInvalidInput, "Y"), code: "INVALID_INPUT"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			handler := NewHandler(Services{
				Compliance: complianceStub{evaluateFn: func(context.Context, string, attendance.EvaluateRequest) (*attendance.Report, error) {
					return nil, tc.err
				}},
			}, nil)
			_, err := handler.WeeklyCompliance(context.Background(), "t", WeeklyComplianceParams{Files: []FileInput{{Name: "w.csv", Content: "x"}}})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestHandler_WeeklyCompliance_SyncFailureStops(t *testing.T) {
	handler := NewHandler(Services{
		PTO: ptoStub{syncFn: func(context.Context, string, bool) (*pto.SyncResult, error) {
			return nil, pto.ErrNotConfigured
		}},
		Compliance: complianceStub{evaluateFn: func(context.Context, string, attendance.EvaluateRequest) (*attendance.Report, error) {
			t.Fatal("evaluate should not run")
			return nil, nil
		}},
	}, nil)

	_, err := handler.WeeklyCompliance(context.Background(), "t", WeeklyComplianceParams{Files: []FileInput{{Name: "w.csv", Content: "x"}}, SyncPTO: true})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "PTO_NOT_CONFIGURED", apiErr.Code)
}

func TestHandler_RosterCommands(t *testing.T) {
	ctx := context.Background()
	imported := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)

	handler := NewHandler(Services{
		Roster: rosterStub{
			importFn: func(_ context.Context, _ string, src sheet.Source) (*roster.ImportResult, error) {
				require.Equal(t, "roster.csv", src.Name)
				return &roster.ImportResult{Imported: 2, Rejected: []roster.RowError{{Row: 3, Reason: "empty name"}}}, nil
			},
			listFn: func(_ context.Context, _ string, filter roster.Filter) ([]roster.Employee, error) {
				require.Equal(t, roster.Filter{Office: "NYC"}, filter)
				return []roster.Employee{{Name: "Alice", LeaveName: "Alice", Department: "Eng", Office: "NYC", RequiredDays: 3, ImportedAt: imported}}, nil
			},
		},
	}, nil)

	result, err := handler.ImportRoster(ctx, "t", ImportRosterParams{File: FileInput{Name: "roster.csv", Content: "FULL_NAME,REQUIRED_DAYS\n"}})
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, []RowErrorResponse{{Row: 3, Reason: "empty name"}}, result.Rejected)

	list, err := handler.ListRoster(ctx, "t", ListRosterParams{Office: "NYC"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	require.Equal(t, "2024-01-05T09:00:00Z", list.Employees[0].ImportedAt)
}

func TestHandler_ImportRoster_EmptyRosterCarriesRejects(t *testing.T) {
	handler := NewHandler(Services{
		Roster: rosterStub{importFn: func(context.Context, string, sheet.Source) (*roster.ImportResult, error) {
			return &roster.ImportResult{Rejected: []roster.RowError{{Row: 2, Reason: "empty name"}}}, roster.ErrEmptyRoster
		}},
	}, nil)

	_, err := handler.ImportRoster(context.Background(), "t", ImportRosterParams{File: FileInput{Name: "r.csv", Content: "x"}})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "EMPTY_ROSTER", apiErr.Code)
	require.NotNil(t, apiErr.Details)
}

func TestHandler_SyncPTO(t *testing.T) {
	syncedAt := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	handler := NewHandler(Services{
		PTO: ptoStub{syncFn: func(_ context.Context, _ string, force bool) (*pto.SyncResult, error) {
			require.True(t, force)
			return &pto.SyncResult{Requests: 4, Days: 6, Invalid: 1, SyncedAt: syncedAt}, nil
		}},
	}, nil)

	resp, err := handler.SyncPTO(context.Background(), "t", SyncPTOParams{Force: true})
	require.NoError(t, err)
	require.Equal(t, SyncPTOResponse{Requests: 4, Days: 6, Invalid: 1, SyncedAt: "2024-01-05T09:00:00Z"}, resp)

	handler = NewHandler(Services{
		PTO: ptoStub{syncFn: func(context.Context, string, bool) (*pto.SyncResult, error) {
			return nil, fmt.Errorf("fetching calendar: %w: status 502", pto.ErrUpstream)
		}},
	}, nil)
	_, err = handler.SyncPTO(context.Background(), "t", SyncPTOParams{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "PTO_UNAVAILABLE", apiErr.Code)
}

func TestHandler_GetRecentActivity(t *testing.T) {
	var got activity.ListActivityOptions
	handler := NewHandler(Services{
		Activity: activityStub{listFn: func(_ context.Context, _ string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
			got = opts
			return []activity.ActivityEntry{{ID: 1, RunID: "run-1", ActivityType: activity.TypePTOSynced, Summary: "synced"}}, nil
		}},
	}, nil)

	resp, err := handler.GetRecentActivity(context.Background(), "t", GetRecentActivityParams{Type: "pto_synced", Limit: 1000})
	require.NoError(t, err)
	require.Equal(t, maxLimit, got.Limit)
	require.NotNil(t, got.ActivityType)
	require.Equal(t, activity.TypePTOSynced, *got.ActivityType)
	require.Len(t, resp.Entries, 1)
	require.Equal(t, "pto_synced", resp.Entries[0].Type)

	_, err = handler.GetRecentActivity(context.Background(), "t", GetRecentActivityParams{})
	require.NoError(t, err)
	require.Equal(t, defaultLimit, got.Limit)
	require.Nil(t, got.ActivityType)
}

func TestMapError_Unknown(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("disk full")))

	err := mapError(errors.New("disk full"))
	require.EqualError(t, err, "disk full")
}

func TestToolError_CarriesJSONPayload(t *testing.T) {
	err := &toolError{api: &APIError{Code: "NO_RECORDS", Message: "no valid sign-in rows"}}
	require.JSONEq(t, `{"code":"NO_RECORDS","message":"no valid sign-in rows"}`, err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "NO_RECORDS", apiErr.Code)
}
