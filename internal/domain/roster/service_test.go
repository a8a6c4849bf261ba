package roster_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/repository/mocks"
	"github.com/ganot/signin-mcp/internal/sheet"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rosterSource(body string) sheet.Source {
	return sheet.Source{Name: "roster.csv", Body: strings.NewReader(body)}
}

func TestRosterService_Import(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.EmployeeRepository{}
	activities := &mocks.ActivityRepository{}

	var stored []roster.Employee
	repo.On("Replace", ctx, tenantID, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(2).([]roster.Employee)
	}).Return(nil)
	activities.On("Log", ctx, tenantID, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeRosterImported
	})).Return(nil)

	body := "FULL_NAME,JW_NAME,DEPARTMENT,OFFICE,REQUIRED_DAYS\n" +
		"Alice Smith,Smith Alice,Design,\"Brooklyn, NY\",3\n" +
		"Bob Jones,,Engineering,\"Denver, CO\",2.0\n" +
		",,Design,\"Brooklyn, NY\",3\n" +
		"alice  smith,,Design,\"Brooklyn, NY\",3\n" +
		"Carol,,Ops,\"Denver, CO\",9\n" +
		"Dan,,Ops,\"Denver, CO\",two\n" +
		"Erin,,Ops,\"Denver, CO\",\n"

	svc := roster.NewService(repo, activities, nil)
	result, err := svc.Import(ctx, tenantID, rosterSource(body))
	require.NoError(t, err)
	require.Equal(t, 3, result.Imported)
	require.Len(t, result.Rejected, 4)
	require.Equal(t, 4, result.Rejected[0].Row)
	require.Equal(t, "duplicate of row 2", result.Rejected[1].Reason)

	require.Len(t, stored, 3)
	require.Equal(t, "Smith Alice", stored[0].LeaveName)
	require.Equal(t, "Brooklyn, NY", stored[0].Office)
	require.Equal(t, "Bob Jones", stored[1].LeaveName)
	require.Equal(t, 2, stored[1].RequiredDays)
	require.Equal(t, 0, stored[2].RequiredDays)

	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestRosterService_ImportMissingColumn(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	svc := roster.NewService(repo, nil, nil)

	_, err := svc.Import(context.Background(), "tenant1", rosterSource("NAME,OFFICE\nAlice,Denver\n"))
	require.ErrorIs(t, err, roster.ErrMissingColumn)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestRosterService_ImportNoValidRows(t *testing.T) {
	repo := &mocks.EmployeeRepository{}
	svc := roster.NewService(repo, nil, nil)

	result, err := svc.Import(context.Background(), "tenant1", rosterSource("FULL_NAME,REQUIRED_DAYS\n,3\nBob,-1\n"))
	require.ErrorIs(t, err, roster.ErrEmptyRoster)
	require.Len(t, result.Rejected, 2)
	repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestRosterService_ImportNilBody(t *testing.T) {
	svc := roster.NewService(&mocks.EmployeeRepository{}, nil, nil)
	_, err := svc.Import(context.Background(), "tenant1", sheet.Source{Name: "roster.csv"})
	require.ErrorIs(t, err, roster.ErrInvalidInput)
}

func TestRosterService_ImportRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EmployeeRepository{}
	repo.On("Replace", ctx, "tenant1", mock.Anything).Return(errors.New("disk full"))

	svc := roster.NewService(repo, nil, nil)
	_, err := svc.Import(ctx, "tenant1", rosterSource("FULL_NAME,REQUIRED_DAYS\nAlice,3\n"))
	require.ErrorContains(t, err, "replacing roster")
}

func TestRosterService_List(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EmployeeRepository{}
	filter := roster.Filter{Office: "Denver, CO"}
	repo.On("List", ctx, "tenant1", filter).Return([]roster.Employee{{Name: "Bob Jones"}}, nil)

	svc := roster.NewService(repo, nil, nil)
	employees, err := svc.List(ctx, "tenant1", filter)
	require.NoError(t, err)
	require.Len(t, employees, 1)
}
