package signin

import (
	"strings"
	"time"
)

// DefaultLayouts are the timestamp layouts tried, in order, when a mapping
// does not name its own.
var DefaultLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
	"1/2/2006",
}

// Mapping tells Parse which columns hold the identifier and the timestamp.
// Each field lists header candidates; the first one present in a source wins.
// When no timestamp column is present, Date (and optionally Time) columns
// are joined with a space and parsed instead.
type Mapping struct {
	Identifier []string   `json:"identifier,omitempty"`
	Timestamp  []string   `json:"timestamp,omitempty"`
	Date       []string   `json:"date,omitempty"`
	Time       []string   `json:"time,omitempty"`
	Layouts    []string   `json:"layouts,omitempty"`
	TimeZone   string     `json:"timezone,omitempty"`
	WeekScheme WeekScheme `json:"week_scheme,omitempty"`
}

// DefaultMapping returns the mapping used for a plain "name,datetime" sheet.
func DefaultMapping() Mapping {
	return Mapping{
		Identifier: []string{"name"},
		Timestamp:  []string{"datetime"},
		Date:       []string{"date"},
		Time:       []string{"time"},
		Layouts:    append([]string(nil), DefaultLayouts...),
		TimeZone:   "UTC",
		WeekScheme: WeekISO,
	}
}

// WithDefaults fills every empty field from DefaultMapping.
func (m Mapping) WithDefaults() Mapping {
	def := DefaultMapping()
	if m.Identifier = nonBlank(m.Identifier); len(m.Identifier) == 0 {
		m.Identifier = def.Identifier
	}
	if m.Timestamp = nonBlank(m.Timestamp); len(m.Timestamp) == 0 {
		m.Timestamp = def.Timestamp
	}
	if m.Date = nonBlank(m.Date); len(m.Date) == 0 {
		m.Date = def.Date
	}
	if m.Time = nonBlank(m.Time); len(m.Time) == 0 {
		m.Time = def.Time
	}
	if m.Layouts = nonBlank(m.Layouts); len(m.Layouts) == 0 {
		m.Layouts = def.Layouts
	}
	if strings.TrimSpace(m.TimeZone) == "" {
		m.TimeZone = def.TimeZone
	}
	if m.WeekScheme == "" {
		m.WeekScheme = def.WeekScheme
	}
	return m
}

// Location resolves the mapping's time zone.
func (m Mapping) Location() (*time.Location, error) {
	name := strings.TrimSpace(m.TimeZone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ConfigError{Field: "timezone", Candidates: []string{name}, Reason: "unknown time zone"}
	}
	return loc, nil
}

// Validate checks the mapping without looking at any data.
func (m Mapping) Validate() error {
	if !m.WeekScheme.Valid() {
		return &ConfigError{Field: "week_scheme", Candidates: []string{string(m.WeekScheme)}, Reason: "unknown week scheme"}
	}
	if _, err := m.Location(); err != nil {
		return err
	}
	return nil
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
