package perturb

import (
	"fmt"
	"math"

	"github.com/galdata/nefield/internal/geom"
	"github.com/galdata/nefield/internal/params"
)

// VoidRecord is one void catalog entry: an ellipsoidal region centred
// at galactic (L, B, D) with 1/e semi-axes (A, B2, C) in kpc, rotated
// by ThetaY about the y axis then ThetaZ about the z axis (degrees).
// Ne is the density inside the void, which replaces the smooth field
// there; a void is usually an under-density, so Ne is typically below
// the ambient value, but the model does not require it.
// voidSoftCutoff is the normalised squared radius beyond which a
// soft-edged void no longer claims the point. Voids override the field
// rather than add to it, so the truncation is tighter than for clumps:
// past m = 3 the override would replace the ambient density with a
// vanishing tail.
const voidSoftCutoff = 3.0

type VoidRecord struct {
	Name         string
	L, B, D      float64
	Ne, F        float64
	A, B2, C     float64
	ThetaY       float64
	ThetaZ       float64
	Edge         Edge
}

type void struct {
	rec     VoidRecord
	x, y, z float64
	// Rotation products of the ellipsoid metric, precomputed once.
	cc12, s2, cs21 float64
	cs12, c2, ss12 float64
	s1, c1         float64
	ia2, ib2, ic2  float64 // inverse squared semi-axes
}

// VoidCatalog answers void-override queries. Built once, immutable
// afterwards.
type VoidCatalog struct {
	voids []void
}

// NewVoidCatalog converts records to galactocentric positions and
// precomputes each void's rotated ellipsoid metric.
func NewVoidCatalog(recs []VoidRecord, rsun float64) (*VoidCatalog, error) {
	v := &VoidCatalog{voids: make([]void, len(recs))}
	for i, rec := range recs {
		if rec.A <= 0 || rec.B2 <= 0 || rec.C <= 0 {
			return nil, fmt.Errorf("%w: void %q: semi-axes must be positive, got (%g, %g, %g)",
				params.ErrConfiguration, rec.Name, rec.A, rec.B2, rec.C)
		}
		if rec.Ne < 0 || math.IsNaN(rec.Ne) {
			return nil, fmt.Errorf("%w: void %q: density must be non-negative, got %g",
				params.ErrConfiguration, rec.Name, rec.Ne)
		}
		x, y, z := geom.GalacticToCartesian(rec.L, rec.B, rec.D, rsun)

		thy := rec.ThetaY * math.Pi / 180
		thz := rec.ThetaZ * math.Pi / 180
		s1, c1 := math.Sin(thy), math.Cos(thy)
		s2, c2 := math.Sin(thz), math.Cos(thz)

		v.voids[i] = void{
			rec: rec, x: x, y: y, z: z,
			cc12: c1 * c2, s2: s2, cs21: c2 * s1,
			cs12: c1 * s2, c2: c2, ss12: s1 * s2,
			s1: s1, c1: c1,
			ia2: 1 / (rec.A * rec.A),
			ib2: 1 / (rec.B2 * rec.B2),
			ic2: 1 / (rec.C * rec.C),
		}
	}
	return v, nil
}

// Len returns the number of catalog entries.
func (v *VoidCatalog) Len() int { return len(v.voids) }

// Evaluate returns the void density override at (x, y, z). w is 1 when
// the point lies inside a void (the returned ne then replaces the
// smooth field) and 0 otherwise. hit is the 1-based index of the
// winning void; when voids overlap the later catalog entry wins.
func (v *VoidCatalog) Evaluate(x, y, z float64) (ne, f float64, hit int, w float64) {
	for j := range v.voids {
		vd := &v.voids[j]
		dx := x - vd.x
		dy := y - vd.y
		dz := z - vd.z
		u := vd.cc12*dx + vd.s2*dy + vd.cs21*dz
		p := -vd.cs12*dx + vd.c2*dy - vd.ss12*dz
		q := -vd.s1*dx + vd.c1*dz
		m := u*u*vd.ia2 + p*p*vd.ib2 + q*q*vd.ic2
		switch vd.rec.Edge {
		case EdgeHard:
			if m <= 1 {
				ne, f, hit = vd.rec.Ne, vd.rec.F, j+1
			}
		default:
			if m < voidSoftCutoff {
				ne, f, hit = vd.rec.Ne*math.Exp(-m), vd.rec.F, j+1
			}
		}
	}
	if hit != 0 {
		w = 1
	}
	return ne, f, hit, w
}

// DefaultVoids is the compact void catalog of the default model
// version. Versioned static data.
func DefaultVoids() []VoidRecord {
	return []VoidRecord{
		{Name: "eridanus_cavity", L: 195.0, B: -30.0, D: 0.20, Ne: 0.002, F: 0.01,
			A: 0.16, B2: 0.10, C: 0.10, ThetaY: 0, ThetaZ: 25, Edge: EdgeHard},
		{Name: "gsh_238", L: 238.0, B: 0.0, D: 0.80, Ne: 0.005, F: 0.1,
			A: 0.40, B2: 0.25, C: 0.20, ThetaY: 0, ThetaZ: -20, Edge: EdgeSoft},
		{Name: "sco_cen_cavity", L: 350.0, B: 15.0, D: 0.15, Ne: 0.003, F: 0.05,
			A: 0.12, B2: 0.10, C: 0.08, ThetaY: 10, ThetaZ: 0, Edge: EdgeSoft},
		{Name: "pleiades_bubble", L: 166.5, B: -23.5, D: 0.125, Ne: 0.004, F: 0.02,
			A: 0.06, B2: 0.06, C: 0.05, ThetaY: 0, ThetaZ: 0, Edge: EdgeHard},
	}
}
