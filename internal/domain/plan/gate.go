package plan

import (
	"fmt"
	"sort"
)

type bucketKey struct {
	domain Domain
	bucket Bucket
}

var ceilings = map[bucketKey]int{
	{DomainHabits, BucketAll}:         7,
	{DomainNotes, BucketAll}:          15,
	{DomainTodos, BucketTask}:         10,
	{DomainTodos, BucketYearly}:       5,
	{DomainTodos, BucketMonthly}:      5,
	{DomainReading, BucketWantToRead}: 7,
	{DomainReading, BucketReading}:    7,
	{DomainReading, BucketFinished}:   7,
	{DomainWatch, BucketToWatch}:      7,
	{DomainWatch, BucketWatching}:     7,
	{DomainWatch, BucketWatched}:      7,
	{DomainSourceDumps, BucketAll}:    7,
}

var premiumOnly = map[Capability]bool{
	CapCardColor:     true,
	CapStreakDisplay: true,
	CapUsageReports:  true,
	CapAIDashboard:   true,
	CapAIChat:        true,
	CapScreenshots:   true,
}

var capabilityMessages = map[Capability]string{
	CapCardColor:     "Upgrade to change background color.",
	CapStreakDisplay: "Upgrade to see your streaks.",
	CapUsageReports:  "Upgrade to unlock usage reports.",
	CapAIDashboard:   "Upgrade to unlock the AI dashboard.",
	CapAIChat:        "AI chat is a premium feature. Upgrade to continue.",
	CapScreenshots:   "Upgrade to attach screenshots.",
}

// CeilingFor returns the free-tier ceiling for a bucket. ok is false for unlimited buckets.
func CeilingFor(d Domain, b Bucket) (ceiling int, ok bool) {
	ceiling, ok = ceilings[bucketKey{d, b}]
	return ceiling, ok
}

// CanCreate reports whether a new item may be added to a bucket holding count items.
func CanCreate(d Domain, b Bucket, count int, t Tier) bool {
	return Check(d, b, count, t).Allowed
}

// Check evaluates a creation against the bucket's ceiling.
func Check(d Domain, b Bucket, count int, t Tier) Decision {
	dec := Decision{Allowed: true, Domain: d, Bucket: b, Count: count}
	ceiling, limited := CeilingFor(d, b)
	dec.Ceiling = ceiling
	if IsPremium(t) || !limited || count < ceiling {
		return dec
	}
	dec.Allowed = false
	dec.Message = fmt.Sprintf("Free plan limit reached (%d items). Upgrade to create more.", ceiling)
	return dec
}

// CheckMove evaluates moving an item from one bucket to another. Only the destination
// is checked and a move within the same bucket is always allowed.
func CheckMove(d Domain, from, to Bucket, destCount int, t Tier) Decision {
	if from == to {
		return Decision{Allowed: true, Domain: d, Bucket: to, Count: destCount}
	}
	return Check(d, to, destCount, t)
}

// CanMove is the predicate form of CheckMove.
func CanMove(d Domain, from, to Bucket, destCount int, t Tier) bool {
	return CheckMove(d, from, to, destCount, t).Allowed
}

// CanUse reports whether a capability is available to the tier.
func CanUse(c Capability, t Tier) bool {
	if !premiumOnly[c] {
		return true
	}
	return IsPremium(t)
}

// Require returns a *CapabilityError when the capability is locked for the tier.
func Require(c Capability, t Tier) error {
	if CanUse(c, t) {
		return nil
	}
	return &CapabilityError{Capability: c}
}

// Capabilities lists every premium-only capability with its availability for the tier.
func Capabilities(t Tier) map[Capability]bool {
	out := make(map[Capability]bool, len(premiumOnly))
	for c := range premiumOnly {
		out[c] = CanUse(c, t)
	}
	return out
}

// Limits returns the ceiling table ordered by domain then bucket.
func Limits() []Limit {
	out := make([]Limit, 0, len(ceilings))
	for k, v := range ceilings {
		out = append(out, Limit{Domain: k.domain, Bucket: k.bucket, Ceiling: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Bucket < out[j].Bucket
	})
	return out
}
