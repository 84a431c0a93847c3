package spiral

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/interp"

	"github.com/galdata/nefield/internal/params"
)

// Kernel selects the nearest-arm evaluation path. It is resolved once
// at construction, never per call.
type Kernel int

const (
	// KernelReference refines the coarse minimum with a windowed cubic
	// fit evaluated on a fine angular grid.
	KernelReference Kernel = iota
	// KernelGrid pre-samples each arm into a dense polyline and answers
	// queries through a spatial bucket index. Its one-time build cost is
	// paid on Warmup (or lazily on first query).
	KernelGrid
)

// Tolerance is the documented agreement bound, in kpc, on perpendicular
// distance between any two of: the reference kernel, the grid kernel,
// and a brute-force scan over the dense samples. The bound is set by
// the reference kernel, which inherits fine-grid quantisation (half a
// fine step times the curve speed, up to ~0.05 at the outer rim) plus
// the windowed cubic's interpolation error between coarse control
// samples. The dense polyline error is two orders of magnitude below
// it.
const Tolerance = 0.1

const (
	defaultFineStep  = 0.01   // rad, reference fine-grid step
	defaultDenseStep = 0.001  // rad, accelerated pre-sampling step
	bucketSize       = 1.0    // kpc, spatial index cell size
	refineHalfWindow = 3      // control samples each side of the coarse minimum
)

// Config tunes geometry construction. The zero value selects the
// reference kernel with default steps.
type Config struct {
	Kernel    Kernel
	FineStep  float64 // rad; 0 means defaultFineStep
	DenseStep float64 // rad; 0 means defaultDenseStep
}

type arm struct {
	number int
	theta  []float64
	r      []float64
	// Control sample positions in the plane, derived once.
	x, y []float64
	// radius interpolates theta -> r; fitted once at construction and
	// only read afterwards.
	radius interp.NaturalCubic
}

// Geometry answers nearest-arm and per-arm distance queries. It is
// immutable after New and safe for concurrent use.
type Geometry struct {
	arms      []arm
	kernel    Kernel
	fineStep  float64
	denseStep float64

	gridOnce sync.Once
	grid     []denseArm
}

// New builds the geometry from per-arm control tables. Construction
// fits one interpolant per arm; queries never refit them.
func New(tables []ArmTable, cfg Config) (*Geometry, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no spiral-arm tables", params.ErrConfiguration)
	}
	g := &Geometry{
		kernel:    cfg.Kernel,
		fineStep:  cfg.FineStep,
		denseStep: cfg.DenseStep,
		arms:      make([]arm, len(tables)),
	}
	if g.fineStep <= 0 {
		g.fineStep = defaultFineStep
	}
	if g.denseStep <= 0 {
		g.denseStep = defaultDenseStep
	}
	for i, t := range tables {
		if len(t.Theta) != len(t.R) {
			return nil, fmt.Errorf("%w: arm %d: %d angles vs %d radii",
				params.ErrConfiguration, t.Number, len(t.Theta), len(t.R))
		}
		if len(t.Theta) < 4 {
			return nil, fmt.Errorf("%w: arm %d: need at least 4 control points, got %d",
				params.ErrConfiguration, t.Number, len(t.Theta))
		}
		for k := 1; k < len(t.Theta); k++ {
			if t.Theta[k] <= t.Theta[k-1] {
				return nil, fmt.Errorf("%w: arm %d: control angles must be strictly ascending",
					params.ErrConfiguration, t.Number)
			}
		}
		a := arm{
			number: t.Number,
			theta:  append([]float64(nil), t.Theta...),
			r:      append([]float64(nil), t.R...),
		}
		a.x = make([]float64, len(a.theta))
		a.y = make([]float64, len(a.theta))
		for k, th := range a.theta {
			a.x[k] = -a.r[k] * math.Sin(th)
			a.y[k] = a.r[k] * math.Cos(th)
		}
		if err := a.radius.Fit(a.theta, a.r); err != nil {
			return nil, fmt.Errorf("%w: arm %d: fitting radius interpolant: %v",
				params.ErrConfiguration, t.Number, err)
		}
		g.arms[i] = a
	}
	return g, nil
}

// NumArms returns the number of arms.
func (g *Geometry) NumArms() int { return len(g.arms) }

// ArmNumber returns the model arm number for tabulation slot i.
func (g *Geometry) ArmNumber(i int) int { return g.arms[i].number }

// Warmup forces the one-time construction of the accelerated kernel's
// dense samples and bucket index, so the cost is paid deterministically
// instead of on the first real query. A no-op for the reference kernel.
func (g *Geometry) Warmup() {
	if g.kernel == KernelGrid {
		g.gridOnce.Do(g.buildGrid)
	}
}

// Distances fills out with the minimum in-plane distance (kpc) from
// (x, y) to each arm, in tabulation order, and returns it. If out is
// nil or too short a new slice is allocated.
func (g *Geometry) Distances(x, y float64, out []float64) []float64 {
	if len(out) < len(g.arms) {
		out = make([]float64, len(g.arms))
	}
	out = out[:len(g.arms)]
	switch g.kernel {
	case KernelGrid:
		g.gridOnce.Do(g.buildGrid)
		for i := range g.grid {
			out[i] = g.grid[i].minDist(x, y)
		}
	default:
		for i := range g.arms {
			out[i] = g.refineDist(&g.arms[i], x, y)
		}
	}
	return out
}

// NearestArm returns the tabulation index of the arm closest to (x, y)
// and the perpendicular distance to it. Ties go to the lowest index.
func (g *Geometry) NearestArm(x, y float64) (int, float64) {
	var buf [8]float64
	d := g.Distances(x, y, buf[:])
	best, bd := 0, d[0]
	for i := 1; i < len(d); i++ {
		if d[i] < bd {
			best, bd = i, d[i]
		}
	}
	return best, bd
}

// BruteForceDistances is the linear scan over the raw control points.
// It is the correctness yardstick both kernels are tested against; it
// takes no shortcuts and does no interpolation.
func (g *Geometry) BruteForceDistances(x, y float64, out []float64) []float64 {
	if len(out) < len(g.arms) {
		out = make([]float64, len(g.arms))
	}
	out = out[:len(g.arms)]
	for i := range g.arms {
		a := &g.arms[i]
		best := math.Inf(1)
		for k := range a.x {
			dx := a.x[k] - x
			dy := a.y[k] - y
			if d2 := dx*dx + dy*dy; d2 < best {
				best = d2
			}
		}
		out[i] = math.Sqrt(best)
	}
	return out
}

// BruteForceNearest returns the nearest arm by linear scan over control
// points, ties to the lowest index.
func (g *Geometry) BruteForceNearest(x, y float64) (int, float64) {
	var buf [8]float64
	d := g.BruteForceDistances(x, y, buf[:])
	best, bd := 0, d[0]
	for i := 1; i < len(d); i++ {
		if d[i] < bd {
			best, bd = i, d[i]
		}
	}
	return best, bd
}
