package order

import (
	"time"

	"engage/internal/pkg/errs"
	"engage/internal/pkg/guard"
)

// ErrSchedulingIntentIsNotConstructed is returned when a SchedulingIntent
// bypassed its constructors.
var ErrSchedulingIntentIsNotConstructed = errs.NewValueIsRequiredError(
	"scheduling intent must be created via NewUrgentIntent, NewPreferredIntent or NewScheduledIntent")

// IntentKind distinguishes the three mutually exclusive ways a customer can
// express when the service should happen.
type IntentKind int

const (
	// IntentUnknown represents an invalid or undefined intent.
	IntentUnknown IntentKind = iota

	// IntentUrgent means "as soon as possible", with no specific time.
	IntentUrgent

	// IntentPreferred carries a soft preference the specialist may adjust.
	IntentPreferred

	// IntentScheduled carries an agreed fixed time.
	IntentScheduled
)

// String returns the wire name of the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentUrgent:
		return "URGENT"
	case IntentPreferred:
		return "PREFERRED"
	case IntentScheduled:
		return "SCHEDULED"
	default:
		return "UNKNOWN"
	}
}

// SchedulingIntent is a value object carrying exactly one of the three
// scheduling expressions: urgent, a preferred time, or an agreed time.
// Urgent intents carry no timestamp; the other two always do.
type SchedulingIntent struct { //nolint:recvcheck //using for validation
	kind IntentKind
	at   *time.Time

	guard guard.ConstructorGuard
}

// NewUrgentIntent creates an "as soon as possible" intent.
func NewUrgentIntent() SchedulingIntent {
	return SchedulingIntent{kind: IntentUrgent, guard: guard.NewConstructorGuard()}
}

// NewPreferredIntent creates an intent with the customer's preferred time.
func NewPreferredIntent(at time.Time) (SchedulingIntent, error) {
	if at.IsZero() {
		return SchedulingIntent{}, errs.NewValueIsRequiredError("preferred time")
	}
	return SchedulingIntent{kind: IntentPreferred, at: &at, guard: guard.NewConstructorGuard()}, nil
}

// NewScheduledIntent creates an intent with an agreed fixed time.
func NewScheduledIntent(at time.Time) (SchedulingIntent, error) {
	if at.IsZero() {
		return SchedulingIntent{}, errs.NewValueIsRequiredError("scheduled time")
	}
	return SchedulingIntent{kind: IntentScheduled, at: &at, guard: guard.NewConstructorGuard()}, nil
}

// RestoreSchedulingIntent reconstructs an intent from persistence.
func RestoreSchedulingIntent(kind IntentKind, at *time.Time) (SchedulingIntent, error) {
	switch kind {
	case IntentUrgent:
		return NewUrgentIntent(), nil
	case IntentPreferred:
		if at == nil {
			return SchedulingIntent{}, errs.NewValueIsRequiredError("preferred time")
		}
		return NewPreferredIntent(*at)
	case IntentScheduled:
		if at == nil {
			return SchedulingIntent{}, errs.NewValueIsRequiredError("scheduled time")
		}
		return NewScheduledIntent(*at)
	default:
		return SchedulingIntent{}, errs.NewValueIsInvalidError("scheduling intent kind")
	}
}

// Validate ensures the intent was created through a constructor.
func (i SchedulingIntent) Validate() error {
	return i.guard.Validate(ErrSchedulingIntentIsNotConstructed)
}

// Kind returns which scheduling expression this intent carries.
func (i SchedulingIntent) Kind() IntentKind {
	return i.kind
}

// At returns the intent's timestamp, nil for urgent intents.
func (i SchedulingIntent) At() *time.Time {
	return i.at
}

// IsUrgent reports whether the intent is "as soon as possible".
func (i SchedulingIntent) IsUrgent() bool {
	return i.kind == IntentUrgent
}
