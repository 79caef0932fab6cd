// Package order implements the order aggregate: the lifecycle of a service
// engagement between a customer and a specialist.
//
// The aggregate owns the status state machine (see Status), the append-only
// event log fed by every transition (see Event), and the rating recorded
// when a confirmed order is closed (see Rating). Transition methods enforce
// both the acting principal and the state precondition, surfacing
// errs.ErrNotAuthorized and errs.ErrPreconditionFailed respectively, so the
// application layer can translate failures without inspecting state itself.
//
// Concurrency is not handled here: the aggregate validates transitions in
// memory, and repositories apply them with a conditional write on the prior
// status, reporting a conflict when another caller won the race.
package order
