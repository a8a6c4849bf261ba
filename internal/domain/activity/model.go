package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeRosterImported      ActivityType = "roster_imported"
	TypePTOSynced           ActivityType = "pto_synced"
	TypeSigninsSummarized   ActivityType = "signins_summarized"
	TypeComplianceEvaluated ActivityType = "compliance_evaluated"
)

// Valid reports whether t is one of the known types.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeRosterImported, TypePTOSynced, TypeSigninsSummarized, TypeComplianceEvaluated:
		return true
	default:
		return false
	}
}

// ActivityEntry represents an event in the activity log. It records what
// ran and how much data it touched, never the data itself.
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	RunID        string       `json:"run_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
