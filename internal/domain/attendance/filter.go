package attendance

import (
	"fmt"
	"sort"
	"strings"
)

// PTO filter values.
const (
	PTOAny  = ""
	PTONone = "none"
	PTOUsed = "used"
)

// Filter narrows compliance rows. Zero values match everything.
type Filter struct {
	Status   Status `json:"status,omitempty"`
	Office   string `json:"office,omitempty"`
	NoSignin bool   `json:"no_signin,omitempty"`
	PTO      string `json:"pto,omitempty"`
}

// Validate rejects unknown status or PTO values.
func (f Filter) Validate() error {
	switch f.Status {
	case "", StatusMet, StatusMissed:
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidInput, f.Status)
	}
	switch f.PTO {
	case PTOAny, PTONone, PTOUsed:
	default:
		return fmt.Errorf("%w: pto %q", ErrInvalidInput, f.PTO)
	}
	return nil
}

// Apply returns the rows matching every set field, keeping their order.
func (f Filter) Apply(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Office != "" && !strings.EqualFold(strings.TrimSpace(f.Office), r.Office) {
			continue
		}
		if f.NoSignin && len(r.SigninDays) > 0 {
			continue
		}
		if f.PTO == PTONone && r.PTOCount > 0 {
			continue
		}
		if f.PTO == PTOUsed && r.PTOCount == 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// DepartmentChart counts employees and misses per department, ordered by
// department name.
func DepartmentChart(rows []Row) []DepartmentStat {
	index := make(map[string]int)
	var stats []DepartmentStat
	for _, r := range rows {
		i, ok := index[r.Department]
		if !ok {
			i = len(stats)
			index[r.Department] = i
			stats = append(stats, DepartmentStat{Department: r.Department})
		}
		stats[i].Employees++
		if r.Status == StatusMissed {
			stats[i].Missed++
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Department < stats[j].Department })
	if stats == nil {
		stats = []DepartmentStat{}
	}
	return stats
}
