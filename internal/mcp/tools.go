package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools exposes every handler method as an MCP tool.
func registerTools(server *sdkmcp.Server, h *Handler) {
	addTool(server, h.logger, &sdkmcp.Tool{
		Name: "summarize_signins",
		Description: "Count sign-ins per employee per week across one or more CSV/XLSX sheets. " +
			"Returns one row per (employee, week), chart points, the covered span, and every rejected row with its reason.",
	}, h.SummarizeSignins)

	addTool(server, h.logger, &sdkmcp.Tool{
		Name: "weekly_compliance",
		Description: "Check the stored roster against one week of sign-ins. Each employee is marked O (met) or X (missed) " +
			"from distinct office-day sign-ins plus PTO days. Filter by status, office, no_signin or pto.",
	}, h.WeeklyCompliance)

	addTool(server, h.logger, &sdkmcp.Tool{
		Name:        "import_roster",
		Description: "Replace the stored employee roster from a sheet with FULL_NAME and REQUIRED_DAYS columns (LEAVE_NAME, DEPARTMENT, OFFICE optional).",
	}, h.ImportRoster)

	addTool(server, h.logger, &sdkmcp.Tool{
		Name:        "list_roster",
		Description: "List the stored roster, optionally filtered by office or department",
	}, h.ListRoster)

	addTool(server, h.logger, &sdkmcp.Tool{
		Name:        "sync_pto",
		Description: "Refresh approved PTO days from the configured leave calendar. Cached results are reused until the TTL expires unless force is set.",
	}, h.SyncPTO)

	addTool(server, h.logger, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent runs (imports, syncs, summaries, compliance checks), newest first",
	}, h.GetRecentActivity)
}

// addTool adapts a tenant-scoped handler method to the SDK's typed tool
// handler. Known domain errors come back as a JSON error payload.
func addTool[In, Out any](server *sdkmcp.Server, logger *slog.Logger, tool *sdkmcp.Tool, fn func(context.Context, string, In) (Out, error)) {
	name := tool.Name
	sdkmcp.AddTool(server, tool, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, Out, error) {
		out, err := fn(ctx, getTenantID(ctx), in)
		if err != nil {
			var zero Out
			if apiErr := MapError(err); apiErr != nil {
				logger.Info("tool rejected", "tool", name, "code", apiErr.Code, "error", apiErr.Message)
				return nil, zero, &toolError{api: apiErr}
			}
			logger.Error("tool failed", "tool", name, "error", err)
			return nil, zero, err
		}
		return nil, out, nil
	})
}
