package signin

import (
	"sort"
	"strings"
	"time"

	"github.com/ganot/signin-mcp/internal/sheet"
)

// Source is one uploaded sign-in sheet.
type Source = sheet.Source

type columns struct {
	identifier int
	timestamp  int
	date       int
	clock      int
}

func resolveColumns(t sheet.Table, m Mapping) columns {
	return columns{
		identifier: t.Column(m.Identifier...),
		timestamp:  t.Column(m.Timestamp...),
		date:       t.Column(m.Date...),
		clock:      t.Column(m.Time...),
	}
}

func (c columns) hasTimestamp() bool {
	return c.timestamp >= 0 || c.date >= 0
}

// Parse reads every source and returns the valid records and the rejected
// rows, each in source order then row order. The only error it returns is a
// *ConfigError, raised before any row is looked at when the mapping is
// invalid or names a column that no source carries.
func Parse(sources []Source, m Mapping) ([]Record, []ParseError, error) {
	m = m.WithDefaults()
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	loc, err := m.Location()
	if err != nil {
		return nil, nil, err
	}

	var problems []ParseError
	tables := make([]sheet.Table, len(sources))
	cols := make([]columns, len(sources))
	loaded := make([]bool, len(sources))
	for i, src := range sources {
		table, err := sheet.Read(src.Body, src.Name)
		if err != nil {
			problems = append(problems, ParseError{Source: i, Name: src.Name, Reason: ReasonUnreadableSource, Value: err.Error()})
			continue
		}
		if len(table.Header) == 0 {
			problems = append(problems, ParseError{Source: i, Name: src.Name, Reason: ReasonEmptySource})
			continue
		}
		tables[i] = table
		cols[i] = resolveColumns(table, m)
		loaded[i] = true
	}

	if err := checkColumns(cols, loaded, m); err != nil {
		return nil, nil, err
	}

	var records []Record
	for i, src := range sources {
		if !loaded[i] {
			continue
		}
		for _, row := range tables[i].Rows {
			rec, perr := cols[i].extract(row, m, loc)
			if perr != nil {
				perr.Source = i
				perr.Name = src.Name
				problems = append(problems, *perr)
				continue
			}
			rec.Source = i
			records = append(records, rec)
		}
	}

	sort.SliceStable(problems, func(a, b int) bool {
		if problems[a].Source != problems[b].Source {
			return problems[a].Source < problems[b].Source
		}
		return problems[a].Row < problems[b].Row
	})

	return records, problems, nil
}

// checkColumns fails when a mapped column is absent from every readable
// source. With no readable source at all there is nothing to check against.
func checkColumns(cols []columns, loaded []bool, m Mapping) error {
	anyLoaded, anyIdentifier, anyTimestamp := false, false, false
	for i, c := range cols {
		if !loaded[i] {
			continue
		}
		anyLoaded = true
		anyIdentifier = anyIdentifier || c.identifier >= 0
		anyTimestamp = anyTimestamp || c.hasTimestamp()
	}
	if !anyLoaded {
		return nil
	}
	if !anyIdentifier {
		return &ConfigError{Field: "identifier", Candidates: nonBlank(m.Identifier), Reason: "column not found in any source"}
	}
	if !anyTimestamp {
		candidates := append(nonBlank(m.Timestamp), nonBlank(m.Date)...)
		return &ConfigError{Field: "timestamp", Candidates: candidates, Reason: "column not found in any source"}
	}
	return nil
}

func (c columns) extract(row sheet.Row, m Mapping, loc *time.Location) (Record, *ParseError) {
	if row.Err != nil {
		return Record{}, &ParseError{Row: row.Line, Reason: ReasonMalformedRow, Value: row.Err.Error()}
	}

	name, ok := row.Cell(c.identifier)
	if !ok {
		return Record{}, &ParseError{Row: row.Line, Column: m.Identifier[0], Reason: ReasonMissingColumn}
	}
	if name == "" {
		return Record{}, &ParseError{Row: row.Line, Column: m.Identifier[0], Reason: ReasonEmptyIdentifier}
	}

	column, raw, ok := c.rawTimestamp(row, m)
	if !ok {
		return Record{}, &ParseError{Row: row.Line, Column: column, Reason: ReasonMissingColumn}
	}
	ts, ok := ParseTimestamp(raw, m.Layouts, loc)
	if !ok {
		return Record{}, &ParseError{Row: row.Line, Column: column, Value: raw, Reason: ReasonBadTimestamp}
	}

	return Record{Employee: name, Timestamp: ts, Row: row.Line}, nil
}

func (c columns) rawTimestamp(row sheet.Row, m Mapping) (string, string, bool) {
	if c.timestamp >= 0 {
		value, ok := row.Cell(c.timestamp)
		return m.Timestamp[0], value, ok
	}
	if c.date < 0 {
		return m.Timestamp[0], "", false
	}
	date, ok := row.Cell(c.date)
	if !ok {
		return m.Date[0], "", false
	}
	if clock, ok := row.Cell(c.clock); ok && clock != "" {
		return m.Date[0], date + " " + clock, true
	}
	return m.Date[0], date, true
}

// ParseTimestamp tries each layout in order, then an Excel date serial.
func ParseTimestamp(value string, layouts []string, loc *time.Location) (time.Time, bool) {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, true
		}
	}
	return sheet.SerialTime(value, loc)
}
