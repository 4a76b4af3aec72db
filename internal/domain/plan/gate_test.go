package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPremium(t *testing.T) {
	require.False(t, IsPremium(TierFree))
	require.True(t, IsPremium(TierPlus))
	require.True(t, IsPremium(TierPro))
}

func TestParseTier(t *testing.T) {
	require.Equal(t, TierPlus, ParseTier("plus"))
	require.Equal(t, TierPro, ParseTier(" PRO "))
	require.Equal(t, TierFree, ParseTier("free"))
	require.Equal(t, TierFree, ParseTier("gold"))
	require.Equal(t, "pro", TierPro.String())
}

func TestCeilingFor(t *testing.T) {
	cases := []struct {
		domain Domain
		bucket Bucket
		want   int
	}{
		{DomainHabits, BucketAll, 7},
		{DomainNotes, BucketAll, 15},
		{DomainTodos, BucketTask, 10},
		{DomainTodos, BucketYearly, 5},
		{DomainTodos, BucketMonthly, 5},
		{DomainReading, BucketReading, 7},
		{DomainWatch, BucketWatched, 7},
		{DomainSourceDumps, BucketAll, 7},
	}
	for _, tc := range cases {
		got, ok := CeilingFor(tc.domain, tc.bucket)
		require.True(t, ok, "%s/%s", tc.domain, tc.bucket)
		require.Equal(t, tc.want, got, "%s/%s", tc.domain, tc.bucket)
	}

	_, ok := CeilingFor(DomainJournal, BucketAll)
	require.False(t, ok)
}

func TestCanCreateMonotonic(t *testing.T) {
	for _, l := range Limits() {
		denied := false
		for count := 0; count <= l.Ceiling+5; count++ {
			allowed := CanCreate(l.Domain, l.Bucket, count, TierFree)
			if denied {
				require.False(t, allowed, "%s/%s at %d", l.Domain, l.Bucket, count)
			}
			if !allowed {
				denied = true
			}
			require.Equal(t, count < l.Ceiling, allowed)
			require.True(t, CanCreate(l.Domain, l.Bucket, count, TierPlus))
			require.True(t, CanCreate(l.Domain, l.Bucket, count, TierPro))
		}
	}
}

func TestCheckIsConsistent(t *testing.T) {
	a := Check(DomainNotes, BucketAll, 15, TierFree)
	b := Check(DomainNotes, BucketAll, 15, TierFree)
	require.Equal(t, a, b)
	require.False(t, a.Allowed)
	require.Equal(t, "Free plan limit reached (15 items). Upgrade to create more.", a.Message)

	err := a.Err()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLimitReached))

	var limitErr *LimitError
	require.True(t, errors.As(err, &limitErr))
	require.Equal(t, 15, limitErr.Decision.Ceiling)

	require.NoError(t, Check(DomainNotes, BucketAll, 14, TierFree).Err())
}

func TestCheckUnlimitedBucket(t *testing.T) {
	require.True(t, CanCreate(DomainJournal, BucketAll, 10000, TierFree))
}

func TestCheckMove(t *testing.T) {
	require.True(t, CanMove(DomainReading, BucketReading, BucketReading, 7, TierFree))
	require.False(t, CanMove(DomainReading, BucketWantToRead, BucketReading, 7, TierFree))
	require.True(t, CanMove(DomainReading, BucketWantToRead, BucketReading, 6, TierFree))
	require.True(t, CanMove(DomainReading, BucketWantToRead, BucketReading, 50, TierPlus))
}

func TestCanUse(t *testing.T) {
	for c := range premiumOnly {
		require.False(t, CanUse(c, TierFree), c)
		require.True(t, CanUse(c, TierPlus), c)
	}
	require.True(t, CanUse(Capability("export"), TierFree))

	err := Require(CapCardColor, TierFree)
	require.True(t, errors.Is(err, ErrCapabilityLocked))
	require.Contains(t, err.Error(), "Upgrade to change background color.")
	require.NoError(t, Require(CapCardColor, TierPro))
}

func TestCapabilities(t *testing.T) {
	caps := Capabilities(TierFree)
	require.Len(t, caps, len(premiumOnly))
	require.False(t, caps[CapAIChat])
	require.True(t, Capabilities(TierPlus)[CapAIChat])
}
