package attendance_test

import (
	"testing"

	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/stretchr/testify/require"
)

func TestFilter_Apply(t *testing.T) {
	sheet, err := attendance.Evaluate(testInput())
	require.NoError(t, err)
	rows := sheet.Rows

	tests := []struct {
		name   string
		filter attendance.Filter
		want   []string
	}{
		{name: "all", filter: attendance.Filter{}, want: []string{"Alice Smith", "Bob Jones", "Carol"}},
		{name: "missed", filter: attendance.Filter{Status: attendance.StatusMissed}, want: []string{"Bob Jones", "Carol"}},
		{name: "office", filter: attendance.Filter{Office: "denver, co"}, want: []string{"Bob Jones", "Carol"}},
		{name: "no signin", filter: attendance.Filter{NoSignin: true}, want: []string{"Bob Jones"}},
		{name: "pto used", filter: attendance.Filter{PTO: attendance.PTOUsed}, want: []string{"Alice Smith", "Carol"}},
		{name: "no pto", filter: attendance.Filter{PTO: attendance.PTONone}, want: []string{"Bob Jones"}},
		{name: "combined", filter: attendance.Filter{Status: attendance.StatusMissed, PTO: attendance.PTOUsed}, want: []string{"Carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, r := range tt.filter.Apply(rows) {
				got = append(got, r.Name)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	require.NoError(t, attendance.Filter{Status: attendance.StatusMet, PTO: attendance.PTONone}.Validate())
	require.ErrorIs(t, attendance.Filter{Status: "maybe"}.Validate(), attendance.ErrInvalidInput)
	require.ErrorIs(t, attendance.Filter{PTO: "some"}.Validate(), attendance.ErrInvalidInput)
}

func TestDepartmentChart(t *testing.T) {
	chart := attendance.DepartmentChart([]attendance.Row{
		{Department: "Ops", Status: attendance.StatusMissed},
		{Department: "Design", Status: attendance.StatusMet},
		{Department: "Ops", Status: attendance.StatusMet},
	})
	require.Equal(t, []attendance.DepartmentStat{
		{Department: "Design", Employees: 1, Missed: 0},
		{Department: "Ops", Employees: 2, Missed: 1},
	}, chart)

	require.Empty(t, attendance.DepartmentChart(nil))
}
