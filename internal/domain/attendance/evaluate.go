package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
)

const dateLayout = "2006-01-02"

// Input is everything one evaluation looks at.
type Input struct {
	Records   []signin.Record
	Scheme    signin.WeekScheme
	Location  *time.Location
	Employees []roster.Employee
	Leaves    []pto.Leave
	Policy    Policy
}

// WeekOf returns the single week covered by records.
func WeekOf(records []signin.Record, scheme signin.WeekScheme) (signin.Week, error) {
	span, err := signin.SpanOf(records, scheme)
	if err != nil {
		return signin.Week{}, err
	}
	if len(span.Weeks) > 1 {
		return signin.Week{}, fmt.Errorf("%w: %s to %s", ErrMultipleWeeks, span.Weeks[0], span.Weeks[len(span.Weeks)-1])
	}
	return span.Weeks[0], nil
}

// Evaluate checks every roster employee with required days against the
// week's sign-ins and leave days. Sign-ins and leaves are matched to the
// roster by normalized name: Name for sign-ins, LeaveName for leave days.
func Evaluate(in Input) (*Sheet, error) {
	if err := in.Policy.Validate(); err != nil {
		return nil, err
	}
	week, err := WeekOf(in.Records, in.Scheme)
	if err != nil {
		return nil, err
	}
	start := in.Scheme.Start(week, in.Location)
	end := start.AddDate(0, 0, 6)

	// present[name][date] = weekday
	present := make(map[string]map[string]time.Weekday)
	var order []string
	display := make(map[string]string)
	for _, rec := range in.Records {
		key := signin.NormalizeName(rec.Employee)
		if _, ok := display[key]; !ok {
			display[key] = rec.Employee
			order = append(order, key)
		}
		day := rec.Timestamp.Weekday()
		if !in.Policy.isOfficeDay(day) {
			continue
		}
		if present[key] == nil {
			present[key] = make(map[string]time.Weekday)
		}
		present[key][rec.Timestamp.Format(dateLayout)] = day
	}

	first, last := start.Format(dateLayout), end.Format(dateLayout)
	leave := make(map[string]map[string]time.Weekday)
	for _, l := range in.Leaves {
		date := l.Date.Format(dateLayout)
		if date < first || date > last || !in.Policy.isOfficeDay(l.Date.Weekday()) {
			continue
		}
		key := signin.NormalizeName(l.Name)
		if leave[key] == nil {
			leave[key] = make(map[string]time.Weekday)
		}
		leave[key][date] = l.Date.Weekday()
	}

	sheet := &Sheet{Week: week, WeekStart: start, WeekEnd: end, Rows: []Row{}, Unmatched: []string{}}
	onRoster := make(map[string]bool)
	for _, emp := range in.Employees {
		onRoster[signin.NormalizeName(emp.Name)] = true
		if emp.RequiredDays <= 0 {
			continue
		}
		leaveName := emp.LeaveName
		if strings.TrimSpace(leaveName) == "" {
			leaveName = emp.Name
		}
		sheet.Rows = append(sheet.Rows, evaluateEmployee(emp, present[signin.NormalizeName(emp.Name)], leave[signin.NormalizeName(leaveName)], in.Policy))
	}
	for _, key := range order {
		if !onRoster[key] {
			sheet.Unmatched = append(sheet.Unmatched, display[key])
		}
	}

	sort.SliceStable(sheet.Rows, func(i, j int) bool {
		a, b := sheet.Rows[i], sheet.Rows[j]
		if a.Department != b.Department {
			return a.Department < b.Department
		}
		if a.Office != b.Office {
			return a.Office < b.Office
		}
		return signin.NormalizeName(a.Name) < signin.NormalizeName(b.Name)
	})
	return sheet, nil
}

func evaluateEmployee(emp roster.Employee, present, leave map[string]time.Weekday, p Policy) Row {
	presentDays := weekdaySet(present)
	ptoDays := weekdaySet(leave)

	required := max(0, emp.RequiredDays-len(leave))
	count := min(required, len(present))
	row := Row{
		Name:         emp.Name,
		Department:   emp.Department,
		Office:       emp.Office,
		Status:       StatusMet,
		RequiredDays: emp.RequiredDays,
		Required:     required,
		Present:      count,
		PTOCount:     len(leave),
		SigninDays:   []string{},
		AbsentDays:   []string{},
		PTODays:      []string{},
		PresentDates: sortedDates(present),
	}
	if count < required {
		row.Status = StatusMissed
	}

	for _, d := range p.OfficeDays {
		switch {
		case presentDays[d]:
			row.SigninDays = append(row.SigninDays, dayName(d))
		case ptoDays[d]:
		case row.Status == StatusMissed:
			row.AbsentDays = append(row.AbsentDays, dayName(d))
		}
		if ptoDays[d] {
			row.PTODays = append(row.PTODays, dayName(d))
		}
	}
	row.Details = fmt.Sprintf("%d / %d [ PTOs=%d ]", row.Present, row.Required, row.PTOCount)
	return row
}

func weekdaySet(days map[string]time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

func sortedDates(days map[string]time.Weekday) []string {
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// SigninLabel renders the sign-in days the way the weekly sheet shows them,
// "Tue/Thu" or NoSignin.
func (r Row) SigninLabel() string {
	if len(r.SigninDays) == 0 {
		return NoSignin
	}
	return strings.Join(r.SigninDays, "/")
}
