package perturb

import (
	"fmt"
	"math"

	"github.com/galdata/nefield/internal/geom"
	"github.com/galdata/nefield/internal/params"
)

// Edge selects the boundary profile of a clump or void.
type Edge int

const (
	// EdgeSoft tapers the density exponentially in the squared
	// normalised radius, truncated where the taper becomes negligible.
	EdgeSoft Edge = iota
	// EdgeHard keeps the peak density uniform out to the 1/e boundary
	// and cuts to zero beyond it.
	EdgeHard
)

// softCutoff is the normalised squared radius beyond which a
// soft-edged clump contributes nothing. Clumps add to the field, so a
// generous cutoff only retains a sub-percent tail while keeping
// far-field queries cheap.
const softCutoff = 5.0

// ClumpRecord is one catalog entry in galactic coordinates: centre at
// longitude L, latitude B (degrees) and distance D (kpc) from the Sun,
// 1/e radius R (kpc), peak density Ne (cm^-3) and fluctuation F.
type ClumpRecord struct {
	Name    string
	L, B, D float64
	Ne, F   float64
	R       float64
	Edge    Edge
}

type clump struct {
	rec     ClumpRecord
	x, y, z float64
	r2      float64
}

// ClumpCatalog answers clump-density queries. Built once from records,
// immutable afterwards.
type ClumpCatalog struct {
	clumps []clump
}

// NewClumpCatalog converts records to galactocentric positions using
// the given solar radius and precomputes the squared radii.
func NewClumpCatalog(recs []ClumpRecord, rsun float64) (*ClumpCatalog, error) {
	c := &ClumpCatalog{clumps: make([]clump, len(recs))}
	for i, rec := range recs {
		if rec.R <= 0 || math.IsNaN(rec.R) {
			return nil, fmt.Errorf("%w: clump %q: radius must be positive, got %g",
				params.ErrConfiguration, rec.Name, rec.R)
		}
		if rec.Ne < 0 || math.IsNaN(rec.Ne) {
			return nil, fmt.Errorf("%w: clump %q: density must be non-negative, got %g",
				params.ErrConfiguration, rec.Name, rec.Ne)
		}
		x, y, z := geom.GalacticToCartesian(rec.L, rec.B, rec.D, rsun)
		c.clumps[i] = clump{rec: rec, x: x, y: y, z: z, r2: rec.R * rec.R}
	}
	return c, nil
}

// Len returns the number of catalog entries.
func (c *ClumpCatalog) Len() int { return len(c.clumps) }

// Evaluate sums the clump contributions at (x, y, z). hit is the
// 1-based index of the last clump containing the point, 0 when the
// point is outside every clump; f is that clump's fluctuation
// parameter.
func (c *ClumpCatalog) Evaluate(x, y, z float64) (ne, f float64, hit int) {
	for j := range c.clumps {
		cl := &c.clumps[j]
		dx := x - cl.x
		dy := y - cl.y
		dz := z - cl.z
		q := (dx*dx + dy*dy + dz*dz) / cl.r2
		switch cl.rec.Edge {
		case EdgeHard:
			if q <= 1 {
				ne += cl.rec.Ne
				f = cl.rec.F
				hit = j + 1
			}
		default:
			if q < softCutoff {
				ne += cl.rec.Ne * math.Exp(-q)
				f = cl.rec.F
				hit = j + 1
			}
		}
	}
	return ne, f, hit
}

// Nearest returns the 1-based index of the catalog entry whose centre
// is closest to (x, y, z) and its centre distance, or (0, +Inf) for an
// empty catalog. Ties go to the lowest index.
func (c *ClumpCatalog) Nearest(x, y, z float64) (int, float64) {
	best, bd := 0, math.Inf(1)
	for j := range c.clumps {
		cl := &c.clumps[j]
		dx := x - cl.x
		dy := y - cl.y
		dz := z - cl.z
		if d2 := dx*dx + dy*dy + dz*dz; d2 < bd {
			best, bd = j+1, d2
		}
	}
	if best == 0 {
		return 0, math.Inf(1)
	}
	return best, math.Sqrt(bd)
}

// DefaultClumps is the compact clump catalog of the default model
// version: a handful of well-established over-dense regions along
// heavily observed sight lines. Versioned static data.
func DefaultClumps() []ClumpRecord {
	return []ClumpRecord{
		{Name: "gum_nebula", L: 262.0, B: -1.0, D: 0.45, Ne: 0.70, F: 8, R: 0.110, Edge: EdgeSoft},
		{Name: "vela_snr", L: 263.9, B: -3.3, D: 0.29, Ne: 1.80, F: 20, R: 0.035, Edge: EdgeHard},
		{Name: "cygnus_region", L: 75.0, B: 0.3, D: 1.50, Ne: 0.25, F: 5, R: 0.300, Edge: EdgeSoft},
		{Name: "ngc6334", L: 351.4, B: 0.6, D: 1.70, Ne: 0.40, F: 10, R: 0.070, Edge: EdgeSoft},
		{Name: "orion_eridanus", L: 205.0, B: -15.0, D: 0.45, Ne: 0.15, F: 2, R: 0.140, Edge: EdgeSoft},
		{Name: "mon_r2", L: 214.0, B: -12.0, D: 0.83, Ne: 0.30, F: 6, R: 0.080, Edge: EdgeSoft},
		{Name: "sgr_a_env", L: 0.1, B: -0.1, D: 8.45, Ne: 2.00, F: 30, R: 0.060, Edge: EdgeSoft},
		{Name: "carina_oba", L: 287.5, B: -0.6, D: 2.35, Ne: 0.35, F: 7, R: 0.120, Edge: EdgeSoft},
	}
}
