package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/repository"
	"github.com/stretchr/testify/require"
)

func testEmployees() []roster.Employee {
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	return []roster.Employee{
		{Name: "Carol", LeaveName: "Carol", Department: "Ops", Office: "Denver, CO", RequiredDays: 3, ImportedAt: now},
		{Name: "bob jones", LeaveName: "Jones Bob", Department: "Engineering", Office: "Denver, CO", RequiredDays: 2, ImportedAt: now},
		{Name: "Alice Smith", LeaveName: "Smith Alice", Department: "Design", Office: "Brooklyn, NY", RequiredDays: 3, ImportedAt: now},
	}
}

func TestEmployeeRepository_ReplaceList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEmployeeRepository(db)

	require.NoError(t, repo.Replace(ctx, "tenant1", testEmployees()))

	employees, err := repo.List(ctx, "tenant1", roster.Filter{})
	require.NoError(t, err)
	require.Len(t, employees, 3)
	require.Equal(t, "Alice Smith", employees[0].Name)
	require.Equal(t, "Smith Alice", employees[0].LeaveName)
	require.Equal(t, 3, employees[0].RequiredDays)
	require.Equal(t, "bob jones", employees[1].Name)
	require.False(t, employees[0].ImportedAt.IsZero())

	// A second import replaces the first
	require.NoError(t, repo.Replace(ctx, "tenant1", testEmployees()[:1]))
	employees, err = repo.List(ctx, "tenant1", roster.Filter{})
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, "Carol", employees[0].Name)
}

func TestEmployeeRepository_Filter(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEmployeeRepository(db)
	require.NoError(t, repo.Replace(ctx, "tenant1", testEmployees()))

	employees, err := repo.List(ctx, "tenant1", roster.Filter{Office: "denver, co"})
	require.NoError(t, err)
	require.Len(t, employees, 2)

	employees, err = repo.List(ctx, "tenant1", roster.Filter{Office: "Denver, CO", Department: "Ops"})
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, "Carol", employees[0].Name)
}

func TestEmployeeRepository_TenantIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEmployeeRepository(db)
	require.NoError(t, repo.Replace(ctx, "tenant1", testEmployees()))

	employees, err := repo.List(ctx, "tenant2", roster.Filter{})
	require.NoError(t, err)
	require.Empty(t, employees)
}

func TestEmployeeRepository_ReplaceRollsBack(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewEmployeeRepository(db)
	require.NoError(t, repo.Replace(ctx, "tenant1", testEmployees()))

	dup := []roster.Employee{
		{Name: "Dan", LeaveName: "Dan", RequiredDays: 1},
		{Name: "DAN", LeaveName: "Dan", RequiredDays: 1},
	}
	err := repo.Replace(ctx, "tenant1", dup)
	require.ErrorIs(t, err, repository.ErrConflict)

	employees, err := repo.List(ctx, "tenant1", roster.Filter{})
	require.NoError(t, err)
	require.Len(t, employees, 3, "failed replace must keep the previous roster")
}
