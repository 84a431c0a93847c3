// Package perturb owns the discrete local perturbations of the density
// field: voids (rotated-ellipsoid regions that override the smooth
// field, usually downward) and clumps (spherical over-densities that
// add on top of everything).
//
// Catalogs are static per model version: records are given in galactic
// (l, b, distance) coordinates, converted to galactocentric Cartesian
// once at construction, and read-only afterwards. Both catalog types
// support a hard 1/e-boundary edge or a smooth exponential taper.
package perturb
