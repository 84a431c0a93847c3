package density

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galdata/nefield/internal/lism"
	"github.com/galdata/nefield/internal/params"
	"github.com/galdata/nefield/internal/perturb"
	"github.com/galdata/nefield/internal/spiral"
)

func newTestField(t *testing.T, table *params.Table, floor float64) *Field {
	t.Helper()
	p, err := params.New(table)
	require.NoError(t, err)
	arms, err := spiral.New(spiral.DefaultTables(), spiral.Config{})
	require.NoError(t, err)
	voids, err := perturb.NewVoidCatalog(perturb.DefaultVoids(), p.Rsun)
	require.NoError(t, err)
	clumps, err := perturb.NewClumpCatalog(perturb.DefaultClumps(), p.Rsun)
	require.NoError(t, err)
	return New(p, arms, lism.Default(), voids, clumps, floor)
}

func ptr(v float64) *float64 { return &v }

func TestEvaluate_AdditivityOfBreakdown(t *testing.T) {
	f := newTestField(t, nil, 0)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 300; i++ {
		x := rng.Float64()*40 - 20
		y := rng.Float64()*40 - 20
		z := rng.Float64()*4 - 2

		total, bd := f.Evaluate(x, y, z)
		if bd.Floored {
			continue
		}
		smooth := bd.ThickDisk + bd.ThinDisk + bd.Arms + bd.GC
		want := (1-bd.VoidWeight)*((1-bd.LISMWeight)*smooth+bd.LISMWeight*bd.LISM) +
			bd.VoidWeight*bd.Void + bd.Clumps
		assert.InDelta(t, want, total, 1e-14, "at (%v, %v, %v)", x, y, z)
	}
}

func TestEvaluate_FiniteEverywhere(t *testing.T) {
	f := newTestField(t, nil, 0)

	extremes := []struct{ x, y, z float64 }{
		{0, 0, 0},
		{0, 8.5, 0},
		{0, 0, 1e4},
		{0, 0, -1e4},
		{1e3, -1e3, 1e6},
		{-50, 50, -300},
	}
	for _, e := range extremes {
		total, bd := f.Evaluate(e.x, e.y, e.z)
		require.False(t, math.IsNaN(total), "at %+v", e)
		require.False(t, math.IsInf(total, 0), "at %+v", e)
		assert.GreaterOrEqual(t, total, 0.0, "at %+v", e)
		for _, c := range []float64{bd.ThickDisk, bd.ThinDisk, bd.Arms, bd.GC, bd.LISM, bd.Void, bd.Clumps} {
			require.False(t, math.IsNaN(c) || math.IsInf(c, 0), "component at %+v", e)
		}
	}
}

func TestEvaluate_ComponentIsolation(t *testing.T) {
	// Disabling all but one weight leaves exactly that component.
	zero := ptr(0.0)

	onlyThick := newTestField(t, &params.Table{
		WeightThinDisk: zero, WeightArms: zero, WeightGC: zero,
		WeightLISM: zero, WeightVoids: zero, WeightClumps: zero,
	}, 0)
	total, bd := onlyThick.Evaluate(3, 4, 0.2)
	assert.Equal(t, bd.ThickDisk, total)
	assert.Zero(t, bd.ThinDisk)
	assert.Zero(t, bd.Arms)

	onlyThin := newTestField(t, &params.Table{
		WeightThickDisk: zero, WeightArms: zero, WeightGC: zero,
		WeightLISM: zero, WeightVoids: zero, WeightClumps: zero,
	}, 0)
	total, bd = onlyThin.Evaluate(3, 4, 0.2)
	assert.Equal(t, bd.ThinDisk, total)
	assert.Zero(t, bd.ThickDisk)
}

func TestEvaluate_ThickDiskProfile(t *testing.T) {
	f := newTestField(t, &params.Table{
		WeightThinDisk: ptr(0.0), WeightArms: ptr(0.0), WeightGC: ptr(0.0),
		WeightLISM: ptr(0.0), WeightVoids: ptr(0.0), WeightClumps: ptr(0.0),
	}, 0)
	p := f.par

	// In the midplane at the Sun's radius the taper is unity and the
	// vertical profile is 1, so the density is exactly n1h1/h1.
	total, _ := f.Evaluate(0, p.Rsun, 0)
	assert.InDelta(t, p.N1h1/p.H1, total, 1e-12)

	// Beyond the radial cutoff the disk vanishes.
	total, _ = f.Evaluate(0, p.A1+0.1, 0)
	assert.Zero(t, total)

	// The vertical falloff halves within a scale height and dies at
	// large |z| without ever going non-finite.
	mid, _ := f.Evaluate(0, p.Rsun, 0)
	high, _ := f.Evaluate(0, p.Rsun, 5*p.H1)
	assert.Less(t, high, mid/10)
}

func TestEvaluate_GalacticCentre(t *testing.T) {
	f := newTestField(t, nil, 0)
	p := f.par

	_, bd := f.Evaluate(p.GCX, p.GCY, p.GCZ)
	assert.Equal(t, p.GCNe0, bd.GC)
	assert.Equal(t, p.GCF0, bd.FGC)

	// Just outside the ellipsoid the component is exactly zero.
	_, bd = f.Evaluate(p.GCX+p.GCRadius*1.01, p.GCY, p.GCZ)
	assert.Zero(t, bd.GC)
}

func TestEvaluate_ArmsRaiseMidplaneDensity(t *testing.T) {
	f := newTestField(t, nil, 0)

	// Scan the midplane and check that arm hits occur and are tagged
	// with a valid model arm number.
	hits := 0
	for x := -12.0; x <= 12.0; x += 0.25 {
		for y := -12.0; y <= 12.0; y += 0.25 {
			_, bd := f.Evaluate(x, y, 0)
			if bd.Arms > 0 {
				hits++
				assert.GreaterOrEqual(t, bd.NearestArm, 1)
				assert.LessOrEqual(t, bd.NearestArm, 5)
				assert.Equal(t, f.par.Fa*f.par.FarmScale[bd.NearestArm-1], bd.FArm)
			}
		}
	}
	assert.Greater(t, hits, 100, "spiral arms should cover a fair share of the inner disk")

	// Far above the plane the arm term is suppressed by the vertical
	// profile.
	_, bdMid := f.Evaluate(3.0, 5.0, 0)
	_, bdHigh := f.Evaluate(3.0, 5.0, 3)
	if bdMid.Arms > 0 {
		assert.Less(t, bdHigh.Arms, bdMid.Arms/10)
	}
}

func TestEvaluate_LISMOverridesSmoothField(t *testing.T) {
	f := newTestField(t, &params.Table{WeightVoids: ptr(0.0), WeightClumps: ptr(0.0)}, 0)
	r := lism.Default()

	// Inside the LHB the total is exactly the LHB density; the smooth
	// components are recorded but carry no weight in the total.
	total, bd := f.Evaluate(r.LHB.X, r.LHB.Y, r.LHB.Z)
	assert.Equal(t, 1.0, bd.LISMWeight)
	assert.Equal(t, r.LHB.Ne, total)
	assert.Greater(t, bd.ThickDisk, 0.0)
}

func TestEvaluate_VoidOverridesEverythingButClumps(t *testing.T) {
	// A synthetic hard void swallowing the Sun's neighbourhood, with
	// clumps off: the total inside is exactly the void density.
	p, err := params.New(&params.Table{WeightClumps: ptr(0.0)})
	require.NoError(t, err)
	arms, err := spiral.New(spiral.DefaultTables(), spiral.Config{})
	require.NoError(t, err)
	voids, err := perturb.NewVoidCatalog([]perturb.VoidRecord{
		{Name: "test", L: 0, B: 0, D: 1, Ne: 0.0005,
			A: 0.2, B2: 0.2, C: 0.2, Edge: perturb.EdgeHard},
	}, p.Rsun)
	require.NoError(t, err)
	clumps, err := perturb.NewClumpCatalog(nil, p.Rsun)
	require.NoError(t, err)
	f := New(p, arms, lism.Default(), voids, clumps, 0)

	total, bd := f.Evaluate(0, p.Rsun-1, 0)
	assert.Equal(t, 1.0, bd.VoidWeight)
	assert.Equal(t, 0.0005, total)
	assert.Equal(t, 1, bd.HitVoid)
}

func TestEvaluate_FloorClampIsRecorded(t *testing.T) {
	// With a floor above any achievable far-field density, remote
	// points clamp and say so.
	f := newTestField(t, nil, 1e-6)
	total, bd := f.Evaluate(500, 500, 500)
	assert.Equal(t, 1e-6, total)
	assert.True(t, bd.Floored)

	// Near the Sun the field is well above the floor.
	total, bd = f.Evaluate(0, 8.0, 0)
	assert.Greater(t, total, 1e-3)
	assert.False(t, bd.Floored)
}
