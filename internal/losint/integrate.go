package losint

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/galdata/nefield/internal/geom"
	"github.com/galdata/nefield/internal/units"
)

// Error taxonomy of the query surface. ErrDomain covers inputs outside
// the model's valid volume, ErrOutOfRange the inverse lookups beyond a
// ray's reachable DM, ErrConvergence an inverse search that cannot
// bracket its target inside the valid range.
var (
	ErrDomain      = errors.New("query outside model domain")
	ErrOutOfRange  = errors.New("target DM exceeds maximum reachable on this ray")
	ErrConvergence = errors.New("inverse DM search failed to bracket target")
)

// DensityFunc evaluates the free-electron density (cm^-3) at
// galactocentric (x, y, z) kpc.
type DensityFunc func(x, y, z float64) float64

// Profile is the distance/DM relation along one ray: parallel buffers
// of distance from the observer (kpc, ascending from 0) and cumulative
// DM (pc cm^-3, non-decreasing). Owned by the caller after creation.
type Profile struct {
	L, B float64 // ray direction, degrees

	Dist []float64
	DM   []float64
}

// Integrator builds profiles for a fixed density field and solar
// radius. Stateless across calls; safe for concurrent use.
type Integrator struct {
	Density DensityFunc
	Rsun    float64

	// Step is the sampling interval along the ray in kpc.
	Step float64
	// MaxDistance bounds every ray; dmToDistance searches within it.
	MaxDistance float64
}

// DefaultStep and DefaultMaxDistance are the integrator defaults: a
// 10 pc sampling step, and an outer boundary generous enough to leave
// the calibrated Galactic volume before truncation bites.
const (
	DefaultStep        = 0.01
	DefaultMaxDistance = 50.0
)

// New returns an Integrator with defaults filled in.
func New(density DensityFunc, rsun float64) *Integrator {
	return &Integrator{
		Density:     density,
		Rsun:        rsun,
		Step:        DefaultStep,
		MaxDistance: DefaultMaxDistance,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Profile samples the field along (l, b) out to maxDist and returns
// the cumulative DM profile. The two buffers are pre-sized from the
// sample count; the trapezoidal accumulation is a single O(n) pass.
func (g *Integrator) Profile(l, b, maxDist float64) (*Profile, error) {
	if !finite(l) || !finite(b) || !finite(maxDist) {
		return nil, fmt.Errorf("%w: non-finite ray (l=%v b=%v d=%v)", ErrDomain, l, b, maxDist)
	}
	if b < -90 || b > 90 {
		return nil, fmt.Errorf("%w: latitude %g outside [-90, 90]", ErrDomain, b)
	}
	if maxDist < 0 {
		return nil, fmt.Errorf("%w: negative path length %g", ErrDomain, maxDist)
	}
	if maxDist > g.MaxDistance {
		return nil, fmt.Errorf("%w: path length %g beyond model boundary %g kpc",
			ErrDomain, maxDist, g.MaxDistance)
	}

	n := int(math.Ceil(maxDist/g.Step)) + 1
	if n < 2 {
		n = 2
	}
	p := &Profile{
		L:    l,
		B:    b,
		Dist: make([]float64, n),
		DM:   make([]float64, n),
	}

	// Uniform spacing with the last sample pinned to maxDist; the
	// final interval may be shorter than Step.
	for i := 0; i < n-1; i++ {
		p.Dist[i] = float64(i) * g.Step
	}
	p.Dist[n-1] = maxDist
	if p.Dist[n-1] <= p.Dist[n-2] {
		// maxDist landed on or before the last grid sample (a grid
		// multiple, or a zero-length ray); drop the duplicate.
		p.Dist = p.Dist[:n-1]
		p.DM = p.DM[:n-1]
		n--
		p.Dist[n-1] = maxDist
	}

	prev := g.densityAt(l, b, p.Dist[0])
	for i := 1; i < n; i++ {
		cur := g.densityAt(l, b, p.Dist[i])
		ds := p.Dist[i] - p.Dist[i-1]
		p.DM[i] = p.DM[i-1] + 0.5*(prev+cur)*ds*units.KpcToPc
		prev = cur
	}
	return p, nil
}

func (g *Integrator) densityAt(l, b, d float64) float64 {
	x, y, z := geom.GalacticToCartesian(l, b, d, g.Rsun)
	return g.Density(x, y, z)
}

// DistanceToDM integrates out to d and returns the DM there.
func (g *Integrator) DistanceToDM(l, b, d float64) (float64, error) {
	p, err := g.Profile(l, b, d)
	if err != nil {
		return 0, err
	}
	return p.DM[len(p.DM)-1], nil
}

// DMToDistance inverts the mapping: the distance at which the
// cumulative DM reaches target. The ray is integrated to the model
// boundary; a target above the reachable maximum is ErrOutOfRange.
func (g *Integrator) DMToDistance(l, b, target float64) (float64, error) {
	if !finite(target) || target < 0 {
		return 0, fmt.Errorf("%w: target DM %g", ErrDomain, target)
	}
	p, err := g.Profile(l, b, g.MaxDistance)
	if err != nil {
		return 0, err
	}
	return p.DistanceAt(target)
}

// DMAt interpolates the profile at distance d.
func (p *Profile) DMAt(d float64) (float64, error) {
	last := len(p.Dist) - 1
	if math.IsNaN(d) || d < 0 || d > p.Dist[last] {
		return 0, fmt.Errorf("%w: distance %g outside profile range [0, %g]",
			ErrOutOfRange, d, p.Dist[last])
	}
	i := sort.SearchFloat64s(p.Dist, d)
	if i <= 0 {
		return p.DM[0], nil
	}
	if p.Dist[i-1] == d {
		return p.DM[i-1], nil
	}
	ds := p.Dist[i] - p.Dist[i-1]
	frac := (d - p.Dist[i-1]) / ds
	return p.DM[i-1] + frac*(p.DM[i]-p.DM[i-1]), nil
}

// DistanceAt inverts the profile: the smallest distance at which the
// cumulative DM reaches target. Within a zero-density plateau the DM
// is flat over a distance interval; the interval's start is returned.
func (p *Profile) DistanceAt(target float64) (float64, error) {
	last := len(p.DM) - 1
	if !finite(target) || target < 0 {
		return 0, fmt.Errorf("%w: target DM %g", ErrDomain, target)
	}
	if target > p.DM[last] {
		return 0, fmt.Errorf("%w: target %g pc cm^-3, maximum %g at %g kpc",
			ErrOutOfRange, target, p.DM[last], p.Dist[last])
	}
	// DM is non-decreasing: bisect for the first sample >= target.
	i := sort.Search(len(p.DM), func(k int) bool { return p.DM[k] >= target })
	if i == len(p.DM) {
		// Unreachable given the range check above, unless the profile
		// contains non-finite values.
		return 0, fmt.Errorf("%w: target %g on ray (l=%g b=%g)",
			ErrConvergence, target, p.L, p.B)
	}
	if i == 0 {
		return p.Dist[0], nil
	}
	// The search guarantees DM[i-1] < target <= DM[i], so the segment
	// has positive DM slope and the crossing interpolates cleanly; a
	// plateau at the target value resolves to its starting distance.
	frac := (target - p.DM[i-1]) / (p.DM[i] - p.DM[i-1])
	return p.Dist[i-1] + frac*(p.Dist[i]-p.Dist[i-1]), nil
}

// Max returns the profile's reachable maximum DM and its distance.
func (p *Profile) Max() (dm, dist float64) {
	last := len(p.DM) - 1
	return p.DM[last], p.Dist[last]
}
