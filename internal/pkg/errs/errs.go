package errs

import (
	"fmt"
	"strings"
)

// sanitize collapses line breaks so error messages stay single-line in logs.
func sanitize(v any) string {
	s := fmt.Sprintf("%s", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ---------------------------------------------------------------------------
// Object not found
// ---------------------------------------------------------------------------

// ErrObjectNotFound is the sentinel error for lookups of unknown references.
var ErrObjectNotFound = fmt.Errorf("object not found")

// ObjectNotFoundError reports that an object referenced by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ---------------------------------------------------------------------------
// Value is invalid
// ---------------------------------------------------------------------------

// ErrValueIsInvalid is the sentinel error for malformed values.
var ErrValueIsInvalid = fmt.Errorf("value is invalid")

// ValueIsInvalidError reports that a named value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ---------------------------------------------------------------------------
// Value is out of range
// ---------------------------------------------------------------------------

// ErrValueIsOutOfRange is the sentinel error for values outside allowed bounds.
var ErrValueIsOutOfRange = fmt.Errorf("value is out of range")

// ValueIsOutOfRangeError reports a value outside its [Min, Max] bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("value is invalid: %v is %s, min value is %v, max value is %v",
		e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return strings.ReplaceAll(strings.ReplaceAll(msg, "\n", " "), "\r", " ")
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ---------------------------------------------------------------------------
// Value is required
// ---------------------------------------------------------------------------

// ErrValueIsRequired is the sentinel error for a missing required value.
var ErrValueIsRequired = fmt.Errorf("value is required")

// ValueIsRequiredError reports that a required value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ---------------------------------------------------------------------------
// Precondition failed (state conflict)
// ---------------------------------------------------------------------------

// ErrPreconditionFailed is the sentinel error for violated state preconditions,
// including lost optimistic-update races and expired deadlines. Attempts that
// hit it must surface it, never silently no-op.
var ErrPreconditionFailed = fmt.Errorf("precondition failed")

// PreconditionFailedError names the precondition an operation violated.
type PreconditionFailedError struct {
	Precondition string
	Cause        error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(precondition string) *PreconditionFailedError {
	return &PreconditionFailedError{Precondition: precondition}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError wrapping an underlying cause.
func NewPreconditionFailedErrorWithCause(precondition string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Precondition: precondition, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrPreconditionFailed, e.Precondition, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Precondition)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ---------------------------------------------------------------------------
// Not authorized
// ---------------------------------------------------------------------------

// ErrNotAuthorized is the sentinel error for actors lacking the required
// role or participation in the targeted object.
var ErrNotAuthorized = fmt.Errorf("not authorized")

// NotAuthorizedError reports that an actor may not perform an action.
type NotAuthorizedError struct {
	Action string
	Actor  string
}

// NewNotAuthorizedError creates a NotAuthorizedError for the given action and actor.
func NewNotAuthorizedError(action string, actor string) *NotAuthorizedError {
	return &NotAuthorizedError{Action: action, Actor: actor}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrNotAuthorized, e.Actor, e.Action)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// ---------------------------------------------------------------------------
// Not eligible
// ---------------------------------------------------------------------------

// ErrNotEligible is the sentinel error for unmet subscription, identity,
// background-check or certification requirements.
var ErrNotEligible = fmt.Errorf("eligibility requirement not met")

// NotEligibleError names the eligibility requirement that was not satisfied.
type NotEligibleError struct {
	Requirement string
	Cause       error
}

// NewNotEligibleError creates a NotEligibleError without a cause.
func NewNotEligibleError(requirement string) *NotEligibleError {
	return &NotEligibleError{Requirement: requirement}
}

// NewNotEligibleErrorWithCause creates a NotEligibleError wrapping an underlying cause.
func NewNotEligibleErrorWithCause(requirement string, cause error) *NotEligibleError {
	return &NotEligibleError{Requirement: requirement, Cause: cause}
}

func (e *NotEligibleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrNotEligible, e.Requirement, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrNotEligible, e.Requirement)
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}

// ---------------------------------------------------------------------------
// Version is invalid
// ---------------------------------------------------------------------------

// ErrVersionIsInvalid is the sentinel error for stale aggregate versions.
var ErrVersionIsInvalid = fmt.Errorf("version is invalid")

// VersionIsInvalidError reports an aggregate version mismatch.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
