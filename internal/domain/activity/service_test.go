package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		RunID:        "run1",
		ActivityType: activity.TypeSigninsSummarized,
		Summary:      "summarized 3 records",
	}

	repo.On("Log", ctx, tenantID, entry).Return(nil)
	repo.On("List", ctx, tenantID, activity.ListActivityOptions{RunID: "run1"}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, tenantID, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, tenantID, activity.ListActivityOptions{RunID: "run1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsUnknownType(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	svc := activity.NewService(repo, nil)

	err := svc.LogActivity(context.Background(), "tenant1", &activity.ActivityEntry{Summary: "x"})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	bogus := activity.ActivityType("record_created")
	_, err = svc.GetRecentActivity(context.Background(), "tenant1", activity.ListActivityOptions{ActivityType: &bogus})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	_, err = svc.GetRecentActivity(context.Background(), "tenant1", activity.ListActivityOptions{Limit: -1})
	require.ErrorIs(t, err, activity.ErrInvalidInput)

	repo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityService_WrapsRepositoryError(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	repo.On("List", mock.Anything, "tenant1", activity.ListActivityOptions{}).Return(nil, errors.New("db closed"))

	_, err := activity.NewService(repo, nil).GetRecentActivity(context.Background(), "tenant1", activity.ListActivityOptions{})
	require.ErrorContains(t, err, "listing activity: db closed")
}

func TestDetails(t *testing.T) {
	require.Equal(t, `{"records":2}`, activity.Details(map[string]int{"records": 2}))
	require.Equal(t, "{}", activity.Details(func() {}))
}
