// Package sheet reduces uploaded spreadsheets (CSV or XLSX) to header + rows.
package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoWorksheet is returned when an XLSX workbook has no sheets.
var ErrNoWorksheet = errors.New("no worksheet found")

// Source is one uploaded file.
type Source struct {
	Name string
	Body io.Reader
}

// Row is one data row. Line is the 1-based record number in the file,
// counting the header as line 1.
type Row struct {
	Line  int
	Cells []string
	Err   error
}

// Table is a decoded sheet. Header is empty when the file had no rows.
type Table struct {
	Header []string
	Rows   []Row
}

// IsXLSX reports whether name looks like an Excel workbook.
func IsXLSX(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// Read decodes a source. Workbooks are read from their first sheet; anything
// else is treated as UTF-8 CSV. A malformed CSV line becomes a Row with Err
// set instead of failing the whole file.
func Read(r io.Reader, name string) (Table, error) {
	if r == nil {
		return Table{}, fmt.Errorf("read %q: nil body", name)
	}
	if IsXLSX(name) {
		return readXLSX(r)
	}
	return readCSV(r)
}

func readCSV(r io.Reader) (Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var t Table
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				t.Rows = append(t.Rows, Row{Line: line, Err: err})
				continue
			}
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		t.add(line, rec)
	}
	return t, nil
}

func readXLSX(r io.Reader) (Table, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return Table{}, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read worksheet %q: %w", sheetName, err)
	}

	var t Table
	for i, rec := range rows {
		t.add(i+1, rec)
	}
	return t, nil
}

func (t *Table) add(line int, rec []string) {
	if blank(rec) {
		return
	}
	if t.Header == nil {
		header := make([]string, len(rec))
		for i, cell := range rec {
			header[i] = strings.TrimSpace(cell)
		}
		t.Header = header
		return
	}
	t.Rows = append(t.Rows, Row{Line: line, Cells: rec})
}

func blank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader folds a header cell for matching.
func NormalizeHeader(header string) string {
	return strings.ToLower(strings.Join(strings.Fields(header), " "))
}

// Column returns the index of the first header matching any candidate, or -1.
// Candidates are tried in order so earlier names win.
func (t Table) Column(candidates ...string) int {
	for _, candidate := range candidates {
		want := NormalizeHeader(candidate)
		if want == "" {
			continue
		}
		for i, header := range t.Header {
			if NormalizeHeader(header) == want {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed cell at idx and whether the row reaches it.
func (r Row) Cell(idx int) (string, bool) {
	if idx < 0 || idx >= len(r.Cells) {
		return "", false
	}
	return strings.TrimSpace(r.Cells[idx]), true
}

// SerialTime interprets value as an Excel date serial, re-anchored in loc.
// Only a realistic range is accepted so that plain years or counts are not
// mistaken for dates.
func SerialTime(value string, loc *time.Location) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial < 20000 || serial > 80000 {
		return time.Time{}, false
	}
	parsed, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	parsed = parsed.Round(time.Second)
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), true
}
