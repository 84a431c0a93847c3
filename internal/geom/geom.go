package geom

import (
	"math"

	"github.com/galdata/nefield/internal/units"
)

// GalacticToCartesian converts a line-of-sight position at galactic
// longitude l, latitude b (both degrees) and distance d (kpc) from the
// Sun into galactocentric Cartesian coordinates. rsun is the Sun's
// galactocentric radius in kpc.
func GalacticToCartesian(lDeg, bDeg, d, rsun float64) (x, y, z float64) {
	l := units.DegToRad(lDeg)
	b := units.DegToRad(bDeg)
	cb := math.Cos(b)
	x = d * cb * math.Sin(l)
	y = rsun - d*cb*math.Cos(l)
	z = d * math.Sin(b)
	return x, y, z
}

// GalactocentricAngle returns the azimuth of (x, y) measured
// counter-clockwise from the +y axis, in degrees in [0, 360).
// This is the angle convention the spiral-arm loci are tabulated in.
func GalactocentricAngle(x, y float64) float64 {
	th := units.RadToDeg(math.Atan2(-x, y))
	if th < 0 {
		th += 360
	}
	return th
}

// Sech2 returns sech(u)^2 evaluated in a form that cannot overflow.
//
// The naive 1/cosh(u)^2 overflows cosh for |u| beyond ~710 and returns
// 0/Inf garbage long before that loses precision. Rewriting through the
// decaying exponential,
//
//	sech(u)^2 = 4*exp(-2|u|) / (1 + exp(-2|u|))^2
//
// keeps every intermediate in [0, 4] and underflows gracefully to 0 for
// large |u|. The two forms agree to ~1 ulp wherever the naive form is
// representable.
func Sech2(u float64) float64 {
	e := math.Exp(-2 * math.Abs(u))
	s := 1 + e
	return 4 * e / (s * s)
}
