package roster

import "time"

// Employee is one roster entry. LeaveName is the name the PTO calendar uses
// for the same person.
type Employee struct {
	Name         string    `json:"name"`
	LeaveName    string    `json:"leave_name"`
	Department   string    `json:"department"`
	Office       string    `json:"office"`
	RequiredDays int       `json:"required_days"`
	ImportedAt   time.Time `json:"imported_at"`
}

// RowError describes a roster row that was not imported.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult reports what an import did.
type ImportResult struct {
	Imported int        `json:"imported"`
	Rejected []RowError `json:"rejected"`
}

// Filter narrows a roster listing. Empty fields match everything.
type Filter struct {
	Office     string
	Department string
}
