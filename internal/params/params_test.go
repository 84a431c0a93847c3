package params

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNew_DefaultsAreValid(t *testing.T) {
	p, err := New(nil)
	require.NoError(t, err)

	assert.Equal(t, 8.5, p.Rsun)
	assert.Equal(t, 0.033, p.N1h1)
	assert.Equal(t, 0.08, p.N2)
	assert.Equal(t, 1.2, p.NarmScale[1])

	// Derived taper normalisation: unity at the Sun by construction.
	g := math.Cos(math.Pi/2*p.Rsun/p.A1) * p.ThickDiskNorm
	assert.InDelta(t, 1.0, g, 1e-12)
}

func TestNew_OverridesApply(t *testing.T) {
	p, err := New(&Table{
		H1:        ptr(1.1),
		Na:        ptr(0.02),
		WarmScale: []float64{1, 1, 1, 1, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.1, p.H1)
	assert.Equal(t, 0.02, p.Na)
	assert.Equal(t, 1.0, p.WarmScale[3])
	// Untouched fields keep defaults.
	assert.Equal(t, 0.15, p.H2)
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	cases := []struct {
		name  string
		table *Table
	}{
		{"negative_scale_height", &Table{H1: ptr(-0.5)}},
		{"zero_arm_width", &Table{Wa: ptr(0)}},
		{"nan_density", &Table{N2: ptr(math.NaN())}},
		{"inf_radius", &Table{A1: ptr(math.Inf(1))}},
		{"negative_density", &Table{Na: ptr(-0.01)}},
		{"weight_above_one", &Table{WeightArms: ptr(1.5)}},
		{"sun_outside_cutoff", &Table{A1: ptr(8.0)}},
		{"short_arm_list", &Table{NarmScale: []float64{1, 2}}},
		{"negative_arm_scale", &Table{HarmScale: []float64{1, 1, -1, 1, 1}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.table)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration), "want ErrConfiguration, got %v", err)
		})
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "table.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"h1": 1.05, "narm": [1,1,1,1,1]}`), 0o644))

	tab, err := LoadTable(path)
	require.NoError(t, err)
	require.NotNil(t, tab.H1)
	assert.Equal(t, 1.05, *tab.H1)

	p, err := New(tab)
	require.NoError(t, err)
	assert.Equal(t, 1.05, p.H1)
	assert.Equal(t, 1.0, p.NarmScale[4])
}

func TestLoadTable_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTable(filepath.Join(dir, "nope.json"))
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = LoadTable(filepath.Join(dir, "table.yaml"))
	assert.ErrorIs(t, err, ErrConfiguration)

	// Unknown keys are typos, not extensions.
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"h1_typo": 1.0}`), 0o644))
	_, err = LoadTable(bad)
	assert.ErrorIs(t, err, ErrConfiguration)
}
