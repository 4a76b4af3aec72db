package account

import (
	"time"

	"github.com/everday/everday/internal/domain/plan"
)

// Profile is the account row that carries plan state.
type Profile struct {
	ID            string     `json:"id" db:"id"`
	Email         string     `json:"email" db:"email"`
	Username      *string    `json:"username,omitempty" db:"username"`
	FullName      *string    `json:"full_name,omitempty" db:"full_name"`
	Plan          string     `json:"plan" db:"plan"`
	IsPremium     bool       `json:"is_premium" db:"is_premium"`
	PlanExpiresAt *time.Time `json:"plan_expires_at,omitempty" db:"plan_expires_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Tier resolves the effective tier at now. An expired plan counts as free and
// the legacy premium flag alone counts as plus.
func (p Profile) Tier(now time.Time) plan.Tier {
	if p.PlanExpiresAt != nil && p.PlanExpiresAt.Before(now) {
		return plan.TierFree
	}
	t := plan.ParseTier(p.Plan)
	if t == plan.TierFree && p.IsPremium {
		return plan.TierPlus
	}
	return t
}

// PlanStatus reports the stored plan and what it unlocks.
type PlanStatus struct {
	Plan          string                   `json:"plan"`
	Tier          string                   `json:"tier"`
	IsPremium     bool                     `json:"is_premium"`
	PlanExpiresAt *time.Time               `json:"plan_expires_at,omitempty"`
	Capabilities  map[plan.Capability]bool `json:"capabilities"`
}

// UpdateRequest describes a profile update request.
type UpdateRequest struct {
	Username *string
	FullName *string
}
