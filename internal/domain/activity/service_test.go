package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/everday/everday/internal/domain/activity"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	accountID := "acct-1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.Entry{
		Type:    activity.TypeGuestMerged,
		Summary: "merged guest data",
	}

	repo.On("Log", ctx, accountID, entry).Return(nil)
	repo.On("List", ctx, accountID, activity.ListOptions{Limit: 50}).Return([]activity.Entry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.Log(ctx, accountID, entry))
	require.False(t, entry.CreatedAt.IsZero())
	require.Equal(t, accountID, entry.AccountID)

	entries, err := svc.Recent(ctx, accountID, activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsInvalid(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.Log(context.Background(), "acct-1", nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.Log(context.Background(), "", &activity.Entry{Type: activity.TypeGuestMerged}), activity.ErrInvalidInput)
}

func TestActivityService_RecordSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, "acct-1", mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeBestStreakRaised && e.Details == `{"best":4}`
	})).Return(errors.New("disk full"))

	svc := activity.NewService(repo, nil)
	svc.Record(ctx, "acct-1", activity.TypeBestStreakRaised, "best streak 4", map[string]int{"best": 4})
	repo.AssertExpectations(t)
}
