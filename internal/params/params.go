package params

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration is the sentinel wrapped by every parameter-table
// failure: missing fields, non-finite values, physically invalid ranges.
var ErrConfiguration = errors.New("invalid model configuration")

// NumArms is the number of spiral arms in the model.
const NumArms = 5

// GalacticParameters is the immutable set of structural constants shared
// by every density and line-of-sight query. Build one with New and treat
// it as read-only for the process lifetime.
type GalacticParameters struct {
	// Rsun is the Sun's galactocentric radius (kpc).
	Rsun float64

	// Thick (outer) disk: midplane column n1h1 (cm^-3 kpc), scale
	// height H1 (kpc), radial cutoff A1 (kpc), fluctuation F1.
	N1h1, H1, A1, F1 float64

	// Thin (inner annular) disk: midplane density N2 (cm^-3), scale
	// height H2 (kpc), annulus radius A2 (kpc), fluctuation F2.
	N2, H2, A2, F2 float64

	// Spiral arms: base density Na (cm^-3), scale height Ha (kpc),
	// half width Wa (kpc), radial rolloff onset Aa (kpc), fluctuation Fa.
	Na, Ha, Wa, Aa, Fa float64

	// Per-arm scale factors indexed by model arm number 1..NumArms
	// (index 0 unused is avoided: slot j holds arm j+1).
	NarmScale [NumArms]float64 // density
	WarmScale [NumArms]float64 // width
	HarmScale [NumArms]float64 // height
	FarmScale [NumArms]float64 // fluctuation

	// Galactic-centre component: ellipsoid centre, semi-axes, peak
	// density and fluctuation.
	GCX, GCY, GCZ      float64
	GCRadius, GCHeight float64
	GCNe0, GCF0        float64

	// Component weights. 1 enables, 0 disables; used by diagnostics
	// and the additivity tests to isolate single components.
	WeightThickDisk float64
	WeightThinDisk  float64
	WeightArms      float64
	WeightGC        float64
	WeightLISM      float64
	WeightVoids     float64
	WeightClumps    float64

	// ThickDiskNorm is 1/cos(pi/2 * Rsun/A1), the taper normalisation
	// that makes the thick-disk radial profile unity at the Sun.
	// Derived once at construction.
	ThickDiskNorm float64
}

// New resolves a (possibly nil) override table against the canonical
// defaults, validates the result, and computes derived factors.
func New(t *Table) (*GalacticParameters, error) {
	p := defaults()
	if t != nil {
		if err := t.apply(p); err != nil {
			return nil, err
		}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.ThickDiskNorm = 1 / math.Cos(math.Pi/2*p.Rsun/p.A1)
	return p, nil
}

func (p *GalacticParameters) validate() error {
	pos := map[string]float64{
		"rsun": p.Rsun,
		"h1":   p.H1, "a1": p.A1,
		"h2": p.H2, "a2": p.A2,
		"ha": p.Ha, "wa": p.Wa, "aa": p.Aa,
		"gc_radius": p.GCRadius, "gc_height": p.GCHeight,
	}
	for name, v := range pos {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrConfiguration, name)
		}
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrConfiguration, name, v)
		}
	}
	nonneg := map[string]float64{
		"n1h1": p.N1h1, "f1": p.F1,
		"n2": p.N2, "f2": p.F2,
		"na": p.Na, "fa": p.Fa,
		"gc_ne0": p.GCNe0, "gc_f0": p.GCF0,
	}
	for name, v := range nonneg {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrConfiguration, name)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %g", ErrConfiguration, name, v)
		}
	}
	for j := 0; j < NumArms; j++ {
		for name, v := range map[string]float64{
			"narm": p.NarmScale[j], "warm": p.WarmScale[j],
			"harm": p.HarmScale[j], "farm": p.FarmScale[j],
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: %s%d must be finite and non-negative, got %g",
					ErrConfiguration, name, j+1, v)
			}
			if (name == "warm" || name == "harm") && v == 0 {
				return fmt.Errorf("%w: %s%d must be positive", ErrConfiguration, name, j+1)
			}
		}
	}
	for name, v := range map[string]float64{
		"weight_thick_disk": p.WeightThickDisk,
		"weight_thin_disk":  p.WeightThinDisk,
		"weight_arms":       p.WeightArms,
		"weight_gc":         p.WeightGC,
		"weight_lism":       p.WeightLISM,
		"weight_voids":      p.WeightVoids,
		"weight_clumps":     p.WeightClumps,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in [0,1], got %g", ErrConfiguration, name, v)
		}
	}
	// The taper normalisation cos(pi/2 * Rsun/A1) must stay away from
	// zero or the thick disk blows up at the Sun.
	if p.Rsun >= p.A1 {
		return fmt.Errorf("%w: rsun (%g) must be inside the thick-disk cutoff a1 (%g)",
			ErrConfiguration, p.Rsun, p.A1)
	}
	return nil
}
