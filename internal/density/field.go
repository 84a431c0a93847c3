package density

import (
	"math"

	"github.com/galdata/nefield/internal/geom"
	"github.com/galdata/nefield/internal/lism"
	"github.com/galdata/nefield/internal/params"
	"github.com/galdata/nefield/internal/perturb"
	"github.com/galdata/nefield/internal/spiral"
)

// armRangeFactor times the base arm half-width bounds the region around
// an arm locus that contributes arm density; beyond it the Gaussian
// falloff is negligible.
const armRangeFactor = 3.0

// Breakdown reports the per-component contributions behind one total
// density value. Weighted components carry their component weight the
// same way the total applies it, so the additivity identity
//
//	Total = (1-VoidWeight)*((1-LISMWeight)*(ThickDisk+ThinDisk+Arms+GC)
//	        + LISMWeight*LISM) + VoidWeight*Void + Clumps
//
// holds exactly (before flooring, which Floored flags).
type Breakdown struct {
	ThickDisk float64
	ThinDisk  float64
	Arms      float64
	GC        float64

	LISM       float64
	LISMWeight float64

	Void       float64
	VoidWeight float64
	HitVoid    int

	Clumps   float64
	HitClump int

	// NearestArm is the model number of the closest arm when any arm
	// is within range, 0 otherwise. FArm…FClump carry the fluctuation
	// parameters of the active components.
	NearestArm int
	FThick     float64
	FThin      float64
	FArm       float64
	FGC        float64
	FLISM      float64
	FVoid      float64
	FClump     float64

	// Floored is set when the combined density fell below the field's
	// floor and was clamped to it.
	Floored bool
}

// Field is the assembled density model. Immutable and safe for
// concurrent queries once built.
type Field struct {
	par    *params.GalacticParameters
	arms   *spiral.Geometry
	region *lism.Region
	voids  *perturb.VoidCatalog
	clumps *perturb.ClumpCatalog
	floor  float64
}

// New assembles a Field. floor is the minimum total density Evaluate
// will report; pass 0 for the physical non-negativity floor.
func New(par *params.GalacticParameters, arms *spiral.Geometry, region *lism.Region,
	voids *perturb.VoidCatalog, clumps *perturb.ClumpCatalog, floor float64) *Field {
	return &Field{par: par, arms: arms, region: region, voids: voids, clumps: clumps, floor: floor}
}

// Evaluate returns the total free-electron density (cm^-3) at
// galactocentric (x, y, z) kpc, with the per-component breakdown.
func (f *Field) Evaluate(x, y, z float64) (float64, Breakdown) {
	p := f.par
	var bd Breakdown

	rr := math.Hypot(x, y)

	// Thick disk: cosine radial taper normalised at the Sun, stable
	// sech^2 vertical profile.
	if p.WeightThickDisk != 0 && rr <= p.A1 {
		g1 := math.Cos(math.Pi/2*rr/p.A1) * p.ThickDiskNorm
		bd.ThickDisk = p.WeightThickDisk * (p.N1h1 / p.H1) * g1 * geom.Sech2(z/p.H1)
		bd.FThick = p.F1
	}

	// Thin disk: Gaussian annulus at radius A2.
	if p.WeightThinDisk != 0 {
		rarg := (rr - p.A2) / 1.8
		if rarg*rarg < 10 {
			bd.ThinDisk = p.WeightThinDisk * p.N2 * math.Exp(-rarg*rarg) * geom.Sech2(z/p.H2)
			bd.FThin = p.F2
		}
	}

	// Galactic-centre ellipsoid.
	if p.WeightGC != 0 {
		bd.GC, bd.FGC = f.gcDensity(x, y, z)
		bd.GC *= p.WeightGC
	}

	// Spiral arms.
	if p.WeightArms != 0 {
		bd.Arms, bd.FArm, bd.NearestArm = f.armDensity(x, y, z, rr)
		bd.Arms *= p.WeightArms
	}

	// Local-ISM override.
	if p.WeightLISM != 0 {
		bd.LISM, bd.FLISM, bd.LISMWeight = f.region.Evaluate(x, y, z)
	}

	// Void override.
	if p.WeightVoids != 0 {
		neV, fV, hit, wV := f.voids.Evaluate(x, y, z)
		bd.Void, bd.FVoid, bd.HitVoid, bd.VoidWeight = neV, fV, hit, wV
	}

	// Clump additions.
	if p.WeightClumps != 0 {
		neC, fC, hit := f.clumps.Evaluate(x, y, z)
		bd.Clumps, bd.FClump, bd.HitClump = neC*p.WeightClumps, fC, hit
	}

	smooth := bd.ThickDisk + bd.ThinDisk + bd.Arms + bd.GC
	blended := (1-bd.LISMWeight)*smooth + bd.LISMWeight*bd.LISM
	total := (1-bd.VoidWeight)*blended + bd.VoidWeight*bd.Void + bd.Clumps

	if total < f.floor {
		total = f.floor
		bd.Floored = true
	}
	return total, bd
}

// gcDensity is the hyperstrong Galactic-centre component: uniform peak
// density inside an (R, H) ellipsoid around the GC, zero outside.
func (f *Field) gcDensity(x, y, z float64) (float64, float64) {
	p := f.par
	// Cheap reject: the component is tiny, skip the metric for points
	// while still far from the centre in y alone.
	if math.Abs(y-p.GCY) > 2*p.GCRadius {
		return 0, 0
	}
	rr := math.Hypot(x-p.GCX, y-p.GCY)
	zz := math.Abs(z - p.GCZ)
	if rr > p.GCRadius || zz > p.GCHeight {
		return 0, 0
	}
	arg := (rr/p.GCRadius)*(rr/p.GCRadius) + (zz/p.GCHeight)*(zz/p.GCHeight)
	if arg > 1 {
		return 0, 0
	}
	return p.GCNe0, p.GCF0
}

// armDensity sums the arm contributions within range of (x, y, z) and
// identifies the nearest in-range arm (model numbering, ties to the
// lowest tabulation index).
func (f *Field) armDensity(x, y, z, rr float64) (ne, farm float64, nearest int) {
	p := f.par

	var buf [8]float64
	dists := f.arms.Distances(x, y, buf[:])

	thDeg := geom.GalactocentricAngle(x, y)
	cutoff := armRangeFactor * p.Wa

	bestSlot := -1
	bestDist := math.Inf(1)
	for slot, dmin := range dists {
		if dmin >= cutoff {
			continue
		}
		num := f.arms.ArmNumber(slot)
		if dmin < bestDist {
			bestDist, bestSlot = dmin, slot
		}

		wArm := p.Wa * p.WarmScale[num-1]
		arg := dmin / wArm
		ga := math.Exp(-arg * arg)

		if rr > p.Aa {
			ga *= geom.Sech2((rr - p.Aa) / 2)
		}
		ga *= geom.Sech2(z / (p.Ha * p.HarmScale[num-1]))
		ga *= armAngularTaper(num, thDeg)

		ne += ga * p.NarmScale[num-1] * p.Na
	}
	if bestSlot >= 0 {
		nearest = f.arms.ArmNumber(bestSlot)
		farm = p.Fa * p.FarmScale[nearest-1]
	}
	return ne, farm, nearest
}

// armAngularTaper applies the amplitude rescalings of arms 2 and 3 in
// their tabulated galactocentric angle windows (degrees, measured
// counter-clockwise from +y).
func armAngularTaper(num int, thDeg float64) float64 {
	switch num {
	case 3:
		const lo, hi = 290.0, 363.0
		t := thDeg - lo
		if t < 0 {
			t += 360
		}
		if t >= 0 && t < hi-lo {
			arg := 2 * math.Pi * t / (hi - lo)
			fac := (1 + math.Cos(arg)) / 2
			return fac * fac * fac * fac
		}
	case 2:
		const lo, hi = 340.0, 370.0
		const facMin = 0.1
		t := thDeg - lo
		if t < 0 {
			t += 360
		}
		if t >= 0 && t < hi-lo {
			arg := 2 * math.Pi * t / (hi - lo)
			return math.Pow((1+facMin+(1-facMin)*math.Cos(arg))/2, 3.5)
		}
	}
	return 1
}
