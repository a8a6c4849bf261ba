package mocks

import (
	"context"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/stretchr/testify/mock"
)

// EmployeeRepository is a mock for roster.Repository.
type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) Replace(ctx context.Context, tenantID string, employees []roster.Employee) error {
	args := m.Called(ctx, tenantID, employees)
	return args.Error(0)
}

func (m *EmployeeRepository) List(ctx context.Context, tenantID string, filter roster.Filter) ([]roster.Employee, error) {
	args := m.Called(ctx, tenantID, filter)
	if list, ok := args.Get(0).([]roster.Employee); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// LeaveRepository is a mock for pto.Repository.
type LeaveRepository struct {
	mock.Mock
}

func (m *LeaveRepository) Replace(ctx context.Context, tenantID string, leaves []pto.Leave, syncedAt time.Time) error {
	args := m.Called(ctx, tenantID, leaves, syncedAt)
	return args.Error(0)
}

func (m *LeaveRepository) Between(ctx context.Context, tenantID string, from, to time.Time) ([]pto.Leave, error) {
	args := m.Called(ctx, tenantID, from, to)
	if list, ok := args.Get(0).([]pto.Leave); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeaveRepository) LastSynced(ctx context.Context, tenantID string) (time.Time, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(time.Time), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
