// Package errs provides standardized error types for the engagement core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the full failure taxonomy of the system:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: validation
//   - ObjectNotFoundError: unknown references
//   - PreconditionFailedError: violated state preconditions, including lost
//     optimistic-update races and expired acceptance deadlines
//   - NotAuthorizedError: actors lacking the required role or participation
//   - NotEligibleError: unmet subscription, identity, background-check or
//     category-certification requirements
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrPreconditionFailed)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify by sentinel
//
// Transport adapters map the sentinels onto their own status codes; the rest
// of the application only ever matches with errors.Is.
package errs
