package account_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/everday/everday/internal/domain/account"
	"github.com/everday/everday/internal/domain/plan"
	"github.com/everday/everday/internal/repository"
	"github.com/everday/everday/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileTier(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.Equal(t, plan.TierFree, account.Profile{Plan: "free"}.Tier(now))
	require.Equal(t, plan.TierPlus, account.Profile{Plan: "free", IsPremium: true}.Tier(now))
	require.Equal(t, plan.TierPro, account.Profile{Plan: "pro"}.Tier(now))
	require.Equal(t, plan.TierPlus, account.Profile{Plan: "plus", PlanExpiresAt: &future}.Tier(now))
	require.Equal(t, plan.TierFree, account.Profile{Plan: "plus", IsPremium: true, PlanExpiresAt: &past}.Tier(now))
}

func TestEnsureProfileCreatesFree(t *testing.T) {
	ctx := context.Background()
	profiles := &mocks.ProfileRepository{}
	profiles.On("Get", ctx, "acct-1").Return(nil, repository.ErrNotFound).Once()
	profiles.On("Create", ctx, mock.MatchedBy(func(p *account.Profile) bool {
		return p.ID == "acct-1" && p.Plan == "free" && p.Email == "a@b.c"
	})).Return(nil)

	svc := account.NewService(profiles, &mocks.APIKeyRepository{}, nil, nil)
	p, err := svc.EnsureProfile(ctx, "acct-1", " a@b.c ")
	require.NoError(t, err)
	require.Equal(t, "free", p.Plan)

	profiles.On("Get", ctx, "acct-1").Return(p, nil).Once()
	again, err := svc.EnsureProfile(ctx, "acct-1", "a@b.c")
	require.NoError(t, err)
	require.Same(t, p, again)
	profiles.AssertNumberOfCalls(t, "Create", 1)
}

func TestTierOfMissingProfileIsFree(t *testing.T) {
	ctx := context.Background()
	profiles := &mocks.ProfileRepository{}
	profiles.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	tier, err := account.NewService(profiles, nil, nil, nil).Tier(ctx, "ghost")
	require.NoError(t, err)
	require.Equal(t, plan.TierFree, tier)
}

func TestSetPlanRecordsActivity(t *testing.T) {
	ctx := context.Background()
	profiles := &mocks.ProfileRepository{}
	profiles.On("Get", ctx, "acct-1").Return(&account.Profile{ID: "acct-1", Plan: "free"}, nil)
	profiles.On("Update", ctx, mock.AnythingOfType("*account.Profile")).Return(nil)
	recorder := &mocks.ActivityRecorder{}
	recorder.On("Record", ctx, "acct-1", mock.Anything, "plan changed from free to plus", mock.Anything).Return()

	svc := account.NewService(profiles, nil, recorder, nil)
	p, err := svc.SetPlan(ctx, "acct-1", plan.TierPlus, nil)
	require.NoError(t, err)
	require.True(t, p.IsPremium)
	recorder.AssertExpectations(t)

	status, err := svc.PlanStatus(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, "plus", status.Plan)
	require.True(t, status.IsPremium)
	require.True(t, status.Capabilities[plan.CapAIChat])
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	ctx := context.Background()
	profiles := &mocks.ProfileRepository{}
	profiles.On("Get", ctx, "acct-1").Return(&account.Profile{ID: "acct-1"}, nil)
	profiles.On("Update", ctx, mock.Anything).Return(repository.ErrConflict)

	name := "sam"
	_, err := account.NewService(profiles, nil, nil, nil).UpdateProfile(ctx, "acct-1", account.UpdateRequest{Username: &name})
	require.ErrorIs(t, err, account.ErrUsernameTaken)
}

func TestIssueAndResolveToken(t *testing.T) {
	ctx := context.Background()
	keys := &mocks.APIKeyRepository{}
	var stored string
	keys.On("CreateKey", ctx, "acct-1", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { stored = args.String(2) }).
		Return(nil)

	svc := account.NewService(nil, keys, nil, nil)
	token, err := svc.IssueToken(ctx, "acct-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "ed_"))
	require.Equal(t, account.HashToken(token), stored)

	keys.On("ResolveKey", ctx, account.HashToken(token)).Return("acct-1", nil)
	keys.On("ResolveKey", ctx, account.HashToken("bogus")).Return("", repository.ErrNotFound)
	keys.On("ResolveKey", ctx, account.HashToken("broken")).Return("", errors.New("db closed"))

	id, err := svc.ResolveAccount(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", id)

	_, err = svc.ResolveAccount(ctx, "bogus")
	require.ErrorIs(t, err, account.ErrInvalidToken)
	_, err = svc.ResolveAccount(ctx, "  ")
	require.ErrorIs(t, err, account.ErrInvalidToken)
	_, err = svc.ResolveAccount(ctx, "broken")
	require.ErrorContains(t, err, "db closed")
}

func TestRegisterCreatesProfileAndKeyTogether(t *testing.T) {
	ctx := context.Background()
	var storedHash string
	profiles := &mocks.ProfileRepository{}
	profiles.On("CreateWithKey", ctx, mock.MatchedBy(func(p *account.Profile) bool {
		return p.ID != "" && p.Email == "new@x.io" && p.Plan == "plus" && p.IsPremium
	}), mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
		storedHash = args.String(2)
	}).Return(nil)

	keys := &mocks.APIKeyRepository{}
	svc := account.NewService(profiles, keys, nil, nil)
	p, token, err := svc.Register(ctx, " new@x.io ", plan.TierPlus)
	require.NoError(t, err)
	require.Equal(t, "plus", p.Plan)
	require.Equal(t, account.HashToken(token), storedHash)
	keys.AssertNotCalled(t, "CreateKey", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterFailureReturnsNoToken(t *testing.T) {
	ctx := context.Background()
	profiles := &mocks.ProfileRepository{}
	profiles.On("CreateWithKey", ctx, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := account.NewService(profiles, &mocks.APIKeyRepository{}, nil, nil)
	p, token, err := svc.Register(ctx, "new@x.io", plan.TierFree)
	require.ErrorContains(t, err, "disk full")
	require.Nil(t, p)
	require.Empty(t, token)
	profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	_, _, err = svc.Register(ctx, "not-an-email", plan.TierFree)
	require.ErrorIs(t, err, account.ErrInvalidInput)
}
