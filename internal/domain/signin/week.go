package signin

import (
	"fmt"
	"time"
)

// WeekScheme decides which 7-day period a timestamp belongs to.
type WeekScheme string

const (
	// WeekISO uses ISO-8601 weeks (Monday to Sunday).
	WeekISO WeekScheme = "iso"
	// WeekSunday uses Sunday to Saturday weeks, numbered by the ISO week of
	// their Monday.
	WeekSunday WeekScheme = "sunday"
)

// Valid reports whether the scheme is known. The empty scheme means WeekISO.
func (s WeekScheme) Valid() bool {
	switch s {
	case "", WeekISO, WeekSunday:
		return true
	default:
		return false
	}
}

// Week identifies one 7-day period.
type Week struct {
	Year   int
	Number int
}

// WeekOf returns the week containing t, using t's own calendar date.
func (s WeekScheme) WeekOf(t time.Time) Week {
	if s == WeekSunday {
		t = t.AddDate(0, 0, 1)
	}
	year, number := t.ISOWeek()
	return Week{Year: year, Number: number}
}

// Start returns midnight of the first day of w in loc.
func (s WeekScheme) Start(w Week, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	// January 4th always falls in ISO week 1.
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, loc)
	sinceMonday := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -sinceMonday+(w.Number-1)*7)
	if s == WeekSunday {
		return monday.AddDate(0, 0, -1)
	}
	return monday
}

// Compare orders weeks chronologically.
func (w Week) Compare(o Week) int {
	switch {
	case w.Year != o.Year:
		if w.Year < o.Year {
			return -1
		}
		return 1
	case w.Number != o.Number:
		if w.Number < o.Number {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (w Week) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Number)
}

// MarshalText renders the week as "2024-W01".
func (w Week) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText parses "2024-W01".
func (w *Week) UnmarshalText(text []byte) error {
	parsed, err := ParseWeek(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ParseWeek parses a week label produced by Week.String.
func ParseWeek(label string) (Week, error) {
	var w Week
	if _, err := fmt.Sscanf(label, "%4d-W%2d", &w.Year, &w.Number); err != nil {
		return Week{}, fmt.Errorf("parse week %q: %w", label, err)
	}
	if w.Number < 1 || w.Number > 53 {
		return Week{}, fmt.Errorf("parse week %q: week out of range", label)
	}
	return w, nil
}
