// Package testserver wires the full stack (SQLite, domain services, MCP
// server) behind an in-memory MCP client for end-to-end tests.
package testserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/mcp"
	"github.com/ganot/signin-mcp/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	DB       *sqlite.DB
	Session  *sdkmcp.ClientSession
	TenantID string

	// Calendar serves the PTO requests in Requests; Fetches counts hits.
	Calendar *httptest.Server
	Requests []pto.Request
	Fetches  atomic.Int32
}

func New(t *testing.T, tenantID string) *TestServer {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	ts := &TestServer{DB: db, TenantID: tenantID}
	ts.Calendar = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ts.Fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pto.Calendar{RequestList: ts.Requests})
	}))

	employeeRepo := sqlite.NewEmployeeRepository(db)
	leaveRepo := sqlite.NewLeaveRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	fetcher := pto.NewClient(pto.ClientConfig{URL: ts.Calendar.URL}, ts.Calendar.Client())
	signinSvc := signin.NewService(signin.DefaultMapping(), activityRepo, nil)
	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Signins:    signinSvc,
			Compliance: attendance.NewService(signinSvc, employeeRepo, leaveRepo, activityRepo, attendance.DefaultPolicy(), nil),
			Roster:     roster.NewService(employeeRepo, activityRepo, nil),
			PTO:        pto.NewService(leaveRepo, fetcher, activityRepo, 10*time.Minute, nil),
			Activity:   activity.NewService(activityRepo, nil),
		},
		Tenant: tenantID,
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	ts.Session, err = client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = ts.Session.Close()
		_ = serverSession.Close()
		ts.Calendar.Close()
		_ = db.Close()
	})

	return ts
}

// CallTool calls a tool, requires it to succeed and decodes its JSON
// output into out.
func (ts *TestServer) CallTool(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	result := ts.call(t, name, args)
	require.False(t, result.IsError, "tool %s failed: %s", name, textOf(t, result))
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), out))
	}
}

// CallToolError calls a tool, requires it to fail and returns the error
// payload.
func (ts *TestServer) CallToolError(t *testing.T, name string, args map[string]any) mcp.APIError {
	t.Helper()
	result := ts.call(t, name, args)
	require.True(t, result.IsError, "tool %s unexpectedly succeeded", name)
	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &apiErr))
	return apiErr
}

func (ts *TestServer) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	result, err := ts.Session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return result
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "unexpected content %T", result.Content[0])
	return text.Text
}

// File builds a text file argument.
func File(name, content string) map[string]any {
	return map[string]any{"name": name, "content": content}
}
