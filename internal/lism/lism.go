package lism

import "math"

// Ellipsoid is an axis-aligned-in-z ellipsoidal structure rotated by
// Theta about the z axis: interior density Ne, fluctuation F, centre
// (X, Y, Z) and 1/e semi-axes (A, B, C), all in kpc and cm^-3.
type Ellipsoid struct {
	Name    string
	X, Y, Z float64
	A, B, C float64
	Theta   float64 // rotation about z, radians
	Ne, F   float64

	sinTh, cosTh float64
}

// contains reports whether (x, y, z) lies inside the ellipsoid.
func (e *Ellipsoid) contains(x, y, z float64) bool {
	dx := x - e.X
	dy := y - e.Y
	dz := z - e.Z
	u := dx*e.cosTh + dy*e.sinTh
	v := -dx*e.sinTh + dy*e.cosTh
	q := (u/e.A)*(u/e.A) + (v/e.B)*(v/e.B) + (dz/e.C)*(dz/e.C)
	return q <= 1
}

// LoopShell is a spherical cavity with a distinct bounding shell:
// interior density Ne out to radius R, shell density ShellNe between R
// and R+DR.
type LoopShell struct {
	Name       string
	X, Y, Z    float64
	R, DR      float64
	Ne, F      float64
	ShellNe    float64
	ShellF     float64
}

// Region is the assembled local-ISM model. Build it with NewRegion (or
// Default); immutable afterwards.
type Region struct {
	LDR   Ellipsoid
	LSB   Ellipsoid
	LHB   Ellipsoid
	LoopI LoopShell
}

// NewRegion precomputes the rotation terms of the ellipsoids and
// returns an immutable Region.
func NewRegion(ldr, lsb, lhb Ellipsoid, loop LoopShell) *Region {
	r := &Region{LDR: ldr, LSB: lsb, LHB: lhb, LoopI: loop}
	for _, e := range []*Ellipsoid{&r.LDR, &r.LSB, &r.LHB} {
		e.sinTh = math.Sin(e.Theta)
		e.cosTh = math.Cos(e.Theta)
	}
	return r
}

// Default returns the canonical local-ISM geometry for the default
// model version. Like the perturbation catalogs this is versioned
// static data, not tuning.
func Default() *Region {
	deg := func(d float64) float64 { return d * math.Pi / 180 }
	return NewRegion(
		Ellipsoid{
			Name: "LDR",
			X:    1.36, Y: 8.06, Z: 0.0,
			A: 1.50, B: 0.750, C: 0.50,
			Theta: deg(-24.2),
			Ne:    0.012, F: 0.1,
		},
		Ellipsoid{
			Name: "LSB",
			X:    -0.75, Y: 9.0, Z: -0.05,
			A: 1.050, B: 0.4250, C: 0.3250,
			Theta: deg(139.0),
			Ne:    0.016, F: 0.01,
		},
		Ellipsoid{
			Name: "LHB",
			X:    0.01, Y: 8.45, Z: 0.17,
			A: 0.085, B: 0.100, C: 0.330,
			Theta: deg(15.0),
			Ne:    0.005, F: 0.01,
		},
		LoopShell{
			Name: "LoopI",
			X:    -0.045, Y: 8.40, Z: 0.07,
			R: 0.120, DR: 0.060,
			Ne: 0.0125, F: 0.2,
			ShellNe: 0.0125, ShellF: 0.01,
		},
	)
}

// Evaluate returns the local-ISM density and fluctuation parameter at
// (x, y, z) together with weight w: 1 when the point is inside any
// structure (the returned density then replaces the smooth field), 0
// otherwise.
func (r *Region) Evaluate(x, y, z float64) (ne, f, w float64) {
	// Most-local-wins precedence: LHB > Loop I > LSB > LDR.
	if r.LHB.contains(x, y, z) {
		return r.LHB.Ne, r.LHB.F, 1
	}
	if inLoop, inShell := r.loopIHit(x, y, z); inLoop || inShell {
		if inLoop {
			return r.LoopI.Ne, r.LoopI.F, 1
		}
		return r.LoopI.ShellNe, r.LoopI.ShellF, 1
	}
	if r.LSB.contains(x, y, z) {
		return r.LSB.Ne, r.LSB.F, 1
	}
	if r.LDR.contains(x, y, z) {
		return r.LDR.Ne, r.LDR.F, 1
	}
	return 0, 0, 0
}

func (r *Region) loopIHit(x, y, z float64) (interior, shell bool) {
	dx := x - r.LoopI.X
	dy := y - r.LoopI.Y
	dz := z - r.LoopI.Z
	d := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if d <= r.LoopI.R {
		return true, false
	}
	if d <= r.LoopI.R+r.LoopI.DR {
		return false, true
	}
	return false, false
}
