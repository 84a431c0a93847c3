// Package spiral owns the spiral-arm geometry of the galactic model.
//
// Each arm is a logarithmic-spiral locus tabulated as (angle, radius)
// control points in the galactic plane. At construction the package fits
// one cubic interpolant per arm (gonum/interp) and derives the control
// sample positions; both are immutable afterwards, so construction cost
// is amortised across every subsequent query.
//
// Nearest-arm queries run on one of two interchangeable kernels selected
// at construction: a reference kernel that refines the coarse minimum
// with a windowed cubic fit on a fine angular grid, and an accelerated
// kernel that pre-samples each arm into a dense polyline indexed by a
// spatial bucket grid. The two kernels, and a brute-force linear scan
// kept for tests, agree within a documented tolerance (see Tolerance).
package spiral
