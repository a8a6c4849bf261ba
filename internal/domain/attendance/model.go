package attendance

import (
	"time"

	"github.com/ganot/signin-mcp/internal/domain/signin"
)

// Status is the weekly compliance verdict for one employee.
type Status string

const (
	StatusMet    Status = "O"
	StatusMissed Status = "X"
)

// NoSignin is reported in place of sign-in days when the employee never
// signed in on an office day.
const NoSignin = "NO SIGNIN"

// Row is one employee's compliance for the evaluated week. Day lists use
// three-letter weekday names in office-day order.
type Row struct {
	Name         string   `json:"name"`
	Department   string   `json:"department"`
	Office       string   `json:"office"`
	Status       Status   `json:"status"`
	RequiredDays int      `json:"required_days"`
	Required     int      `json:"required"`
	Present      int      `json:"present"`
	PTOCount     int      `json:"pto_count"`
	SigninDays   []string `json:"signin_days"`
	AbsentDays   []string `json:"absent_days"`
	PTODays      []string `json:"pto_days"`
	PresentDates []string `json:"present_dates"`
	Details      string   `json:"details"`
}

// Sheet is the evaluated week. Unmatched lists sign-in names that are not on
// the roster, in first-seen order.
type Sheet struct {
	Week      signin.Week `json:"week"`
	WeekStart time.Time   `json:"week_start"`
	WeekEnd   time.Time   `json:"week_end"`
	Rows      []Row       `json:"rows"`
	Unmatched []string    `json:"unmatched"`
}

// DepartmentStat is one bar of the department chart.
type DepartmentStat struct {
	Department string `json:"department"`
	Employees  int    `json:"employees"`
	Missed     int    `json:"missed"`
}
