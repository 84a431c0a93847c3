// Package density evaluates the total free-electron density of the
// Galaxy at a point by combining the structural components: thick and
// thin disks, Galactic-centre enhancement, spiral arms, the local-ISM
// override, void overrides and clump additions.
//
// The combination rule, outermost override first:
//
//	smooth = w1*thick + w2*thin + wa*arms + wgc*gc
//	blended = (1-wlism)*smooth + wlism*lism
//	total = (1-wvoid)*blended + wvoid*void + clumps
//
// where wlism and wvoid are 0/1 containment weights. Every component
// is finite for all real inputs and the total is clamped at a
// configurable floor (zero unless a caller sets otherwise); the clamp
// is recorded in the breakdown rather than applied silently.
package density
