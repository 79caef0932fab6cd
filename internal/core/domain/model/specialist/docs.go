// Package specialist implements the specialist aggregate: the service
// provider profile that the visibility gate evaluates and the geospatial
// candidate search surfaces.
//
// The aggregate mirrors externally owned facts (account block, identity
// verification, background approval) without deciding them, and owns the
// facts this core does decide: the availability toggle, the advertised
// service area, category qualifications with their certification records,
// the weekly schedule, the running rating aggregate and the cancellation
// statistic.
package specialist
