// Package params owns the structural constants of the galactic
// free-electron model: scale heights, cutoff radii, normalisations and
// per-arm scale factors.
//
// A GalacticParameters value is built once from the canonical defaults,
// optionally overlaid with a partial Table of overrides, validated, and
// is immutable from then on. Derived quantities (the thick-disk taper
// normalisation) are computed at construction, never per query.
package params
