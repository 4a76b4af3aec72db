package plan

import "strings"

// Tier is a rank-ordered subscription level.
type Tier int

const (
	TierFree Tier = iota
	TierPlus
	TierPro
)

// ParseTier maps a stored plan name to a tier. Unknown names fall back to free.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plus":
		return TierPlus
	case "pro":
		return TierPro
	default:
		return TierFree
	}
}

func (t Tier) String() string {
	switch t {
	case TierPlus:
		return "plus"
	case TierPro:
		return "pro"
	default:
		return "free"
	}
}

// IsPremium reports whether the tier ranks strictly above free.
func IsPremium(t Tier) bool {
	return t > TierFree
}

// Domain names a feature area whose items are counted against a ceiling.
type Domain string

const (
	DomainHabits      Domain = "habits"
	DomainNotes       Domain = "notes"
	DomainTodos       Domain = "todos"
	DomainReading     Domain = "reading_list"
	DomainWatch       Domain = "watch_list"
	DomainJournal     Domain = "journal"
	DomainSourceDumps Domain = "source_dumps"
)

// Bucket is a sub-collection within a domain. BucketAll covers domains counted as a whole.
type Bucket string

const BucketAll Bucket = ""

const (
	BucketTask    Bucket = "task"
	BucketYearly  Bucket = "yearly"
	BucketMonthly Bucket = "monthly"

	BucketWantToRead Bucket = "want_to_read"
	BucketReading    Bucket = "reading"
	BucketFinished   Bucket = "finished"

	BucketToWatch  Bucket = "to_watch"
	BucketWatching Bucket = "watching"
	BucketWatched  Bucket = "watched"
)

// Capability is a feature that may be locked below premium.
type Capability string

const (
	CapCardColor     Capability = "card_color"
	CapStreakDisplay Capability = "streak_display"
	CapUsageReports  Capability = "usage_reports"
	CapAIDashboard   Capability = "ai_dashboard"
	CapAIChat        Capability = "ai_chat"
	CapScreenshots   Capability = "screenshots"
)

// Scope identifies whose data an operation touches and the tier that governs it.
type Scope struct {
	OwnerID string
	Tier    Tier
	Guest   bool
}

// Decision is the outcome of a ceiling check.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Domain  Domain `json:"domain"`
	Bucket  Bucket `json:"bucket,omitempty"`
	Ceiling int    `json:"ceiling"`
	Count   int    `json:"count"`
	Message string `json:"message,omitempty"`
}

// Err returns a *LimitError for a denied decision and nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &LimitError{Decision: d}
}

// Limit is one row of the ceiling table.
type Limit struct {
	Domain  Domain `json:"domain"`
	Bucket  Bucket `json:"bucket,omitempty"`
	Ceiling int    `json:"ceiling"`
}
