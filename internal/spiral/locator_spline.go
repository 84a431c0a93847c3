package spiral

import (
	"math"

	"gonum.org/v1/gonum/interp"
)

// refineDist is the reference kernel: coarse argmin over the control
// samples, then a cubic fit of squared distance vs angle over the
// surrounding window, scanned on a fine angular grid. The arm radius
// interpolant is the one fitted at construction; it is never refit here.
func (g *Geometry) refineDist(a *arm, x, y float64) float64 {
	// Coarse pass: nearest control sample.
	best, bd := 0, math.Inf(1)
	for k := range a.x {
		dx := a.x[k] - x
		dy := a.y[k] - y
		if d2 := dx*dx + dy*dy; d2 < bd {
			best, bd = k, d2
		}
	}

	lo := best - refineHalfWindow
	if lo < 0 {
		lo = 0
	}
	hi := best + refineHalfWindow
	if hi > len(a.theta) {
		hi = len(a.theta)
	}

	var dsq [2 * refineHalfWindow]float64
	n := hi - lo
	for k := 0; k < n; k++ {
		dx := a.x[lo+k] - x
		dy := a.y[lo+k] - y
		dsq[k] = dx*dx + dy*dy
	}

	var cs interp.NaturalCubic
	if err := cs.Fit(a.theta[lo:hi], dsq[:n]); err != nil {
		// Degenerate window; the coarse minimum is the best answer.
		return math.Sqrt(bd)
	}

	// Fine pass: scan the window for the angle minimising the fitted
	// squared distance, end angle exclusive.
	bestTh, bestV := a.theta[lo], math.Inf(1)
	for t := a.theta[lo]; t < a.theta[hi-1]; t += g.fineStep {
		if v := cs.Predict(t); v < bestV {
			bestV, bestTh = v, t
		}
	}

	r := a.radius.Predict(bestTh)
	ax := -r * math.Sin(bestTh)
	ay := r * math.Cos(bestTh)
	return math.Hypot(x-ax, y-ay)
}
