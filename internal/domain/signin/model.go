package signin

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Record is one validated sign-in row.
type Record struct {
	Employee  string    `json:"employee"`
	Timestamp time.Time `json:"timestamp"`
	Source    int       `json:"source"`
	Row       int       `json:"row"`
}

// Key groups records into one summary row.
type Key struct {
	Employee string
	Week     Week
}

// Summary is one output row per (employee, week).
type Summary struct {
	Employee    string    `json:"employee"`
	Week        Week      `json:"week"`
	Count       int       `json:"signin_count"`
	FirstSignin time.Time `json:"first_signin"`
	LastSignin  time.Time `json:"last_signin"`

	key     string
	records []Record
}

// Key returns the normalized aggregation key of the summary.
func (s Summary) Key() Key {
	return Key{Employee: s.key, Week: s.Week}
}

// Records returns a copy of the records the summary was built from.
func (s Summary) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// ChartPoint is the (week, employee, count) triple used for charting.
type ChartPoint struct {
	Week     Week   `json:"week"`
	Employee string `json:"employee"`
	Count    int    `json:"count"`
}

// NormalizeName trims, collapses inner whitespace and case-folds an
// employee identifier.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
