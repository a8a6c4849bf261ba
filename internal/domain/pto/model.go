package pto

import "time"

// DateLayout is the upstream format of a leave date.
const DateLayout = "2006-01-02"

// Leave is one day of approved time off. Date is midnight UTC of the leave
// day; Name is the calendar's spelling of the employee.
type Leave struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Request is one entry of the upstream calendar's requestList. Only the
// fields the sync uses are decoded.
type Request struct {
	EmployeeID string   `json:"employeeId"`
	Name       string   `json:"name"`
	LeaveType  string   `json:"leaveType"`
	Status     string   `json:"status"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	LeaveDates []string `json:"leaveDates"`
}

// Calendar is the upstream response envelope.
type Calendar struct {
	RequestList []Request `json:"requestList"`
}

// SyncResult reports what a sync did. Cached is true when the stored
// calendar was fresh enough that no fetch happened.
type SyncResult struct {
	Requests int       `json:"requests"`
	Days     int       `json:"days"`
	Invalid  int       `json:"invalid_dates"`
	SyncedAt time.Time `json:"synced_at"`
	Cached   bool      `json:"cached"`
}
