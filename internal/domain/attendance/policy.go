package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Policy lists the weekdays employees are expected in the office.
type Policy struct {
	OfficeDays []time.Weekday
}

// DefaultPolicy expects Tuesday through Thursday.
func DefaultPolicy() Policy {
	return Policy{OfficeDays: []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday}}
}

// ParsePolicy builds a policy from weekday names such as "tue" or
// "Wednesday". An empty list yields DefaultPolicy.
func ParsePolicy(days []string) (Policy, error) {
	if len(days) == 0 {
		return DefaultPolicy(), nil
	}
	seen := make(map[time.Weekday]bool)
	var p Policy
	for _, name := range days {
		day, ok := parseWeekday(name)
		if !ok {
			return Policy{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidPolicy, name)
		}
		if !seen[day] {
			seen[day] = true
			p.OfficeDays = append(p.OfficeDays, day)
		}
	}
	sort.Slice(p.OfficeDays, func(i, j int) bool { return p.OfficeDays[i] < p.OfficeDays[j] })
	return p, nil
}

// Validate checks the policy has at least one office day.
func (p Policy) Validate() error {
	if len(p.OfficeDays) == 0 {
		return fmt.Errorf("%w: no office days", ErrInvalidPolicy)
	}
	return nil
}

func (p Policy) isOfficeDay(d time.Weekday) bool {
	for _, od := range p.OfficeDays {
		if od == d {
			return true
		}
	}
	return false
}

// Names returns the office days as three-letter names.
func (p Policy) Names() []string {
	names := make([]string, len(p.OfficeDays))
	for i, d := range p.OfficeDays {
		names[i] = dayName(d)
	}
	return names
}

func parseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if strings.HasPrefix(full, name) {
			return d, true
		}
	}
	return 0, false
}

func dayName(d time.Weekday) string {
	return d.String()[:3]
}
