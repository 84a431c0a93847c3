package spiral

import "math"

// ArmTable is the control-point table for one arm: radius R (kpc) at
// galactocentric angle Theta (radians, measured counter-clockwise from
// the +y axis), strictly ascending in Theta. Tables are versioned
// static data external to the geometry code.
type ArmTable struct {
	// Number is the model arm number (legacy 1-based numbering kept so
	// diagnostic output stays comparable across model versions).
	Number int
	Theta  []float64
	R      []float64
}

// DefaultControlPoints is the number of control samples per arm in the
// default tables.
const DefaultControlPoints = 20

// logSpiralDef defines one arm as r = rmin * exp((theta-thmin)/a) over
// [thmin, thmin+extent].
type logSpiralDef struct {
	number         int
	a, rmin        float64
	thmin, extent  float64
}

// The five default arm loci. Ordering is the tabulation order; Number
// carries the legacy model numbering used by the per-arm scale factors.
var defaultDefs = []logSpiralDef{
	{number: 1, a: 4.25, rmin: 3.48, thmin: 0.000, extent: 6.00},
	{number: 3, a: 4.25, rmin: 3.48, thmin: 3.141, extent: 6.00},
	{number: 4, a: 4.89, rmin: 4.90, thmin: 2.525, extent: 6.00},
	{number: 2, a: 4.89, rmin: 3.76, thmin: 4.240, extent: 6.00},
	{number: 5, a: 4.57, rmin: 8.10, thmin: 5.847, extent: 0.55},
}

// DefaultTables builds the default per-arm control-point tables:
// log-spiral loci sampled at DefaultControlPoints angles, with the
// radius corrections that reshape arms 2 and 3 in the inner Galaxy.
func DefaultTables() []ArmTable {
	tables := make([]ArmTable, len(defaultDefs))
	for i, def := range defaultDefs {
		n := DefaultControlPoints
		th := make([]float64, n)
		r := make([]float64, n)
		for k := 0; k < n; k++ {
			t := def.thmin + float64(k)*def.extent/float64(n-1)
			th[k] = t
			r[k] = def.rmin * math.Exp((t-def.thmin)/def.a)
		}
		sculptArm(def.number, th, r)
		tables[i] = ArmTable{Number: def.number, Theta: th, R: r}
	}
	return tables
}

// sculptArm applies the angle-dependent radius corrections to arms 2
// and 3. Angles are compared in degrees, matching the tabulated form of
// the corrections.
func sculptArm(number int, th, r []float64) {
	for k := range th {
		deg := th[k] * 180 / math.Pi
		switch number {
		case 3:
			switch {
			case deg > 370 && deg <= 410:
				r[k] *= 1 + 0.04*math.Cos((deg-390)*math.Pi/40)
			case deg > 315 && deg <= 370:
				r[k] *= 1 - 0.07*math.Cos((deg-345)*math.Pi/55)
			case deg > 180 && deg <= 315:
				r[k] *= 1 + 0.16*math.Cos((deg-260)*math.Pi/135)
			}
		case 2:
			if deg > 290 && deg <= 395 {
				r[k] *= 1 - 0.11*math.Cos((deg-350)*math.Pi/105)
			}
		}
	}
}
