package services

import (
	"time"

	"engage/internal/core/domain/model/specialist"
)

// SubscriptionStatus is the raw billing state reported by the billing
// provider for a specialist account.
type SubscriptionStatus string

const (
	// SubscriptionActive is a paid, current subscription.
	SubscriptionActive SubscriptionStatus = "ACTIVE"
	// SubscriptionTrial is a trial subscription; it only counts while the
	// trial end is in the future.
	SubscriptionTrial SubscriptionStatus = "TRIAL"
	// SubscriptionExpired is a lapsed subscription.
	SubscriptionExpired SubscriptionStatus = "EXPIRED"
	// SubscriptionNone means no subscription record exists.
	SubscriptionNone SubscriptionStatus = "NONE"
)

// Subscription is the billing record used as gate input. It is kept raw
// rather than pre-collapsed to a boolean so a trial whose end date has
// passed is judged against the evaluation clock, not against whatever
// clock the provider used when the record was written.
type Subscription struct {
	Status      SubscriptionStatus
	TrialEndsAt *time.Time
}

// OK reports whether the subscription grants visibility at the given instant.
func (s Subscription) OK(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive:
		return true
	case SubscriptionTrial:
		return s.TrialEndsAt != nil && now.Before(*s.TrialEndsAt)
	default:
		return false
	}
}

// VisibilityFacts is the result of one gate evaluation: every independent
// input, the derived toggle permission, and the final verdict. Callers that
// only need the verdict read VisibleNow; the profile screen renders the
// individual facts so a hidden specialist can see which condition failed.
type VisibilityFacts struct {
	AccountBlocked     bool
	IdentityVerified   bool
	BackgroundApproved bool
	SubscriptionOK     bool
	WithinSchedule     bool
	ToggleOn           bool

	// CanToggle is true when the account state alone permits flipping the
	// availability toggle on.
	CanToggle bool
	// VisibleNow is the final verdict: the specialist is discoverable and
	// bookable at the evaluated instant.
	VisibleNow bool
}

// VisibilityGate is a domain service deciding whether a specialist is
// visible to customers right now. The decision combines account standing,
// billing, the weekly working schedule and the specialist's own toggle.
//
// All schedule checks run in one fixed business timezone, so a specialist's
// "9:00 to 18:00" means the same wall clock regardless of where the serving
// host runs.
type VisibilityGate struct {
	businessTZ *time.Location
}

// NewVisibilityGate creates a gate evaluating schedules in the given
// business timezone. A nil location falls back to UTC.
func NewVisibilityGate(businessTZ *time.Location) VisibilityGate {
	if businessTZ == nil {
		businessTZ = time.UTC
	}
	return VisibilityGate{businessTZ: businessTZ}
}

// Evaluate computes the visibility facts for a specialist at the given
// instant. It is a pure function of its inputs; persistence of the verdict
// (for example into the search index) is the caller's concern.
func (g VisibilityGate) Evaluate(sp *specialist.Specialist, sub Subscription, now time.Time) VisibilityFacts {
	facts := VisibilityFacts{
		AccountBlocked:     sp.AccountBlocked(),
		IdentityVerified:   sp.IdentityVerified(),
		BackgroundApproved: sp.BackgroundApproved(),
		SubscriptionOK:     sub.OK(now),
		WithinSchedule:     sp.Schedule().Contains(now.In(g.businessTZ)),
		ToggleOn:           sp.ToggleOn(),
	}

	facts.CanToggle = !facts.AccountBlocked && facts.IdentityVerified && facts.BackgroundApproved
	facts.VisibleNow = facts.CanToggle && facts.SubscriptionOK && facts.ToggleOn && facts.WithinSchedule

	return facts
}
