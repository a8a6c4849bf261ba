package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `signin-mcp turns office sign-in sheets into weekly reports.

Typical flow:
1. import_roster once with the employee sheet (FULL_NAME, REQUIRED_DAYS).
2. summarize_signins to count sign-ins per employee per week.
3. weekly_compliance with one week of sign-ins to mark each employee O (met) or X (missed).
   Set sync_pto to refresh approved leave first, or call sync_pto yourself.

Files are passed inline: {name, content, encoding}. Use encoding "base64" for .xlsx.
Errors come back as JSON with code, message, details and recovery_hint.

Docs:
- signin://docs/index
- signin://docs/formats (accepted sheets, columns, timestamps)
- signin://docs/compliance (how O/X is decided)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "signin://docs/index",
		Name:        "docs-index",
		Title:       "signin-mcp docs index",
		Description: "Start here: which doc answers which question.",
		Content: `# signin-mcp docs

- ` + "`signin://docs/formats`" + ` - sheet formats, column mapping, timestamp layouts, week labels.
- ` + "`signin://docs/compliance`" + ` - office-day policy, PTO handling, filters.

Tools:
- ` + "`summarize_signins`" + ` - (employee, week) counts with rejected rows.
- ` + "`weekly_compliance`" + ` - roster vs one week of sign-ins.
- ` + "`import_roster`" + ` / ` + "`list_roster`" + ` - manage the stored roster.
- ` + "`sync_pto`" + ` - refresh approved leave days.
- ` + "`get_recent_activity`" + ` - what ran recently, by run_id.
`,
	},
	{
		URI:         "signin://docs/formats",
		Name:        "docs-formats",
		Title:       "Sheet formats",
		Description: "Accepted CSV/XLSX layouts, header matching and timestamp parsing.",
		Content: `# Sheet formats

Uploads are CSV (UTF-8, optional BOM) or XLSX (first worksheet). The first
non-blank row is the header. Headers match case-insensitively with runs of
whitespace folded, so "In  Time" matches "in time".

## Sign-in sheets

Default columns: ` + "`name`" + ` and ` + "`datetime`" + `. When no datetime column exists,
` + "`date`" + ` plus an optional ` + "`time`" + ` column are joined. Override per call with
` + "`mapping`" + `: each field is a list of header candidates; the first present wins.

Timestamps try RFC 3339, ISO-like layouts, US "1/2/2006 3:04 PM" forms and
finally Excel date serials. Values without an offset are read in
` + "`mapping.timezone`" + ` (default UTC).

Rows are numbered as in a spreadsheet: the header is row 1. A rejected row
is reported with its file, row, column, value and one of:
malformed_row, missing_column, empty_identifier, unparsable_timestamp,
unreadable_source, empty_source (row 0 means the whole file).

Employee names are matched case-insensitively with whitespace folded; the
spelling shown is the one from the latest sign-in.

## Weeks

` + "`iso`" + ` (default): Monday-Sunday, labelled like 2024-W01.
` + "`sunday`" + `: Sunday-Saturday, labelled by the ISO week of its Monday.

## Roster

Required: FULL_NAME, REQUIRED_DAYS (whole number 0-7, blank means 0).
Optional: LEAVE_NAME (name used on the PTO calendar, defaults to FULL_NAME),
DEPARTMENT, OFFICE. Importing replaces the whole roster.
`,
	},
	{
		URI:         "signin://docs/compliance",
		Name:        "docs-compliance",
		Title:       "Weekly compliance",
		Description: "How weekly_compliance decides O or X, and what the filters do.",
		Content: `# Weekly compliance

All sign-ins must fall in one week; otherwise MULTIPLE_WEEKS is returned.

For each roster employee with REQUIRED_DAYS > 0:
- pto = office days covered by approved leave
- required = REQUIRED_DAYS - pto, never below 0
- present = distinct office days (policy.office_days, default Tue/Wed/Thu)
  with a sign-in, capped at required
- status O when present >= required, else X

Details read "present / required [ PTOs=n ]". For X rows, absent_days lists
office days with neither a sign-in nor leave. Sign-ins
from names not on the roster are listed under ` + "`unmatched`" + `.

Filters narrow the rows only; ` + "`chart`" + ` and ` + "`total`" + ` always describe the whole roster:
- status: O or X
- office: exact office, case-insensitive
- no_signin: employees with no office-day sign-in
- pto: none (no leave that week) or used
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
