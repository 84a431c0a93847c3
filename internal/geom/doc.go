// Package geom owns the shared geometry of the galactic model.
//
// Responsibilities: the Sun-centred line-of-sight to galactocentric
// Cartesian transform, and the numerically stable vertical falloff
// kernel used by every disk-like density component.
//
// Coordinate convention (TC93): the origin is the Galactic centre, the
// Sun sits at (0, Rsun, 0), x points toward l=90 deg and z toward the
// north Galactic pole. All distances are in kpc.
package geom
