// Package losint integrates the density field along lines of sight and
// answers both directions of the distance/dispersion-measure mapping.
//
// A Profile is built in one pass: the field is sampled at a uniform
// step along the ray into pre-sized buffers, and the cumulative DM is
// accumulated with a single O(n) trapezoidal prefix sum. The inverse
// lookup runs against that profile by monotone bisection, so repeated
// queries on the same ray cost one scan plus binary searches.
//
// Degenerate geometry never raises: a zero-length ray yields the
// trivial profile. Boundary violations always do: a requested DM above
// the ray's reachable maximum is ErrOutOfRange, never an extrapolated
// distance.
package losint
