package nefield

import (
	"fmt"

	"github.com/galdata/nefield/internal/density"
	"github.com/galdata/nefield/internal/geom"
	"github.com/galdata/nefield/internal/lism"
	"github.com/galdata/nefield/internal/losint"
	"github.com/galdata/nefield/internal/params"
	"github.com/galdata/nefield/internal/perturb"
	"github.com/galdata/nefield/internal/spiral"
	"github.com/galdata/nefield/internal/version"
)

// Version reports the model release, and CatalogRevision the revision
// of the built-in clump and void catalogs.
func Version() string         { return version.Version }
func CatalogRevision() string { return version.CatalogRevision }

// Re-exported types so callers never import internal packages.
type (
	// Table holds optional overrides for the canonical model
	// parameters; see LoadTable.
	Table = params.Table

	// Breakdown is the per-component decomposition reported alongside
	// a total density.
	Breakdown = density.Breakdown

	// DMProfile is the sampled distance/DM relation along one ray.
	DMProfile = losint.Profile

	// ClumpRecord describes one discrete over-dense region.
	ClumpRecord = perturb.ClumpRecord

	// VoidRecord describes one under-dense region that overrides the
	// smooth model inside its boundary.
	VoidRecord = perturb.VoidRecord

	// Edge selects a clump's boundary falloff.
	Edge = perturb.Edge

	// Kernel selects the spiral-arm distance strategy.
	Kernel = spiral.Kernel
)

const (
	EdgeSoft = perturb.EdgeSoft
	EdgeHard = perturb.EdgeHard

	KernelReference = spiral.KernelReference
	KernelGrid      = spiral.KernelGrid
)

// LoadTable reads a JSON parameter override table. Unknown keys are
// rejected.
func LoadTable(path string) (*Table, error) { return params.LoadTable(path) }

// Config assembles a Model. The zero value builds the canonical model:
// default parameters, built-in clump and void catalogs, the reference
// arm kernel, and the default integrator step and boundary.
type Config struct {
	// Table overrides individual model parameters; nil keeps defaults.
	Table *Table

	// Kernel selects the arm-distance strategy.
	Kernel Kernel

	// StepKpc is the line-of-sight sampling interval; 0 means the
	// default (0.01 kpc).
	StepKpc float64

	// MaxDistanceKpc bounds every ray; 0 means the default (50 kpc).
	MaxDistanceKpc float64

	// DensityFloor is the minimum total density DensityAt reports;
	// 0 means the physical non-negativity floor.
	DensityFloor float64

	// Clumps and Voids replace the built-in catalogs when non-nil. An
	// empty non-nil slice disables the perturbation entirely.
	Clumps []ClumpRecord
	Voids  []VoidRecord
}

// Model is an assembled electron-density model. Immutable and safe for
// concurrent use.
type Model struct {
	par   *params.GalacticParameters
	arms  *spiral.Geometry
	field *density.Field
	integ *losint.Integrator
}

// New builds a Model from cfg. Construction errors wrap
// ErrConfiguration.
func New(cfg Config) (*Model, error) {
	par, err := params.New(cfg.Table)
	if err != nil {
		return nil, err
	}
	if cfg.StepKpc < 0 || cfg.MaxDistanceKpc < 0 || cfg.DensityFloor < 0 {
		return nil, fmt.Errorf("%w: step, max distance and floor must be non-negative", ErrConfiguration)
	}

	arms, err := spiral.New(spiral.DefaultTables(), spiral.Config{Kernel: cfg.Kernel})
	if err != nil {
		return nil, err
	}

	crecs := cfg.Clumps
	if crecs == nil {
		crecs = perturb.DefaultClumps()
	}
	vrecs := cfg.Voids
	if vrecs == nil {
		vrecs = perturb.DefaultVoids()
	}
	clumps, err := perturb.NewClumpCatalog(crecs, par.Rsun)
	if err != nil {
		return nil, err
	}
	voids, err := perturb.NewVoidCatalog(vrecs, par.Rsun)
	if err != nil {
		return nil, err
	}

	field := density.New(par, arms, lism.Default(), voids, clumps, cfg.DensityFloor)

	integ := losint.New(func(x, y, z float64) float64 {
		ne, _ := field.Evaluate(x, y, z)
		return ne
	}, par.Rsun)
	if cfg.StepKpc != 0 {
		integ.Step = cfg.StepKpc
	}
	if cfg.MaxDistanceKpc != 0 {
		integ.MaxDistance = cfg.MaxDistanceKpc
	}

	return &Model{par: par, arms: arms, field: field, integ: integ}, nil
}

// Warmup builds the deferred acceleration structures (the grid
// kernel's dense arm index) so first queries pay no construction cost.
// Calling it is optional and idempotent.
func (m *Model) Warmup() { m.arms.Warmup() }

// Rsun returns the Sun's galactocentric radius in kpc.
func (m *Model) Rsun() float64 { return m.par.Rsun }

// MaxDistance returns the ray boundary in kpc.
func (m *Model) MaxDistance() float64 { return m.integ.MaxDistance }

// DensityAt evaluates the field at Galactic longitude l, latitude b
// (degrees) and distance d (kpc) from the Sun, returning the total
// free-electron density (cm^-3) and its component breakdown.
func (m *Model) DensityAt(l, b, d float64) (float64, Breakdown) {
	x, y, z := geom.GalacticToCartesian(l, b, d, m.par.Rsun)
	return m.field.Evaluate(x, y, z)
}

// DensityXYZ evaluates the field at galactocentric (x, y, z) kpc.
func (m *Model) DensityXYZ(x, y, z float64) (float64, Breakdown) {
	return m.field.Evaluate(x, y, z)
}

// DistanceToDM integrates the field along (l, b) out to d kpc and
// returns the dispersion measure in pc cm^-3.
func (m *Model) DistanceToDM(l, b, d float64) (float64, error) {
	return m.integ.DistanceToDM(l, b, d)
}

// DMToDistance inverts the distance/DM relation along (l, b). It
// returns ErrOutOfRange when dm exceeds the maximum reachable within
// the model boundary.
func (m *Model) DMToDistance(l, b, dm float64) (float64, error) {
	return m.integ.DMToDistance(l, b, dm)
}

// Profile samples the cumulative DM along (l, b) out to maxDist kpc.
// The returned profile supports repeated forward and inverse lookups
// without re-integration.
func (m *Model) Profile(l, b, maxDist float64) (*DMProfile, error) {
	return m.integ.Profile(l, b, maxDist)
}
