// Package nefield models the Galactic free-electron density as a sum
// of large-scale components (thick disk, thin annular disk, spiral
// arms, Galactic centre) modulated by the local interstellar medium
// and perturbed by discrete voids and clumps, and integrates the
// resulting field along lines of sight to map between distance and
// dispersion measure.
//
// The entry point is New, which assembles a Model from a Config; the
// zero Config builds the canonical parameterisation. A Model is
// immutable after construction and safe for concurrent queries.
package nefield
