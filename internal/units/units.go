// Package units provides shared astronomical unit constants and
// conversions. Distances are kiloparsecs internally; dispersion
// measures are quoted in pc cm^-3.
package units

import "math"

// KpcToPc converts path lengths to the parsec units dispersion
// measures are quoted in.
const KpcToPc = 1000.0

// DegToRad converts an angle in degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts an angle in radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
