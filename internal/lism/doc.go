// Package lism models the local interstellar medium: a handful of
// well-mapped structures within a few hundred parsecs of the Sun that
// override the large-scale density field where they apply.
//
// The region is the union of the low-density region (LDR), the local
// superbubble (LSB), the local hot bubble (LHB) and the Loop I shell.
// Where structures overlap the most local wins: LHB over Loop I over
// LSB over LDR. Evaluate returns the blended density together with a
// 0/1 weight the caller uses to swap the override in for the smooth
// components.
package lism
