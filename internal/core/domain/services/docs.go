// Package services provides domain services that implement business rules
// spanning more than one aggregate in the engagement system.
//
// The package includes:
//   - VisibilityGate: decides whether a specialist is discoverable and
//     bookable at a given instant
//   - CandidateMatcher: filters and ranks specialists eligible to serve a
//     request at a given location
//
// Domain services here are pure: they take fully loaded aggregates and
// plain inputs and return verdicts, leaving persistence to the callers.
package services
