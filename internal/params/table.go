package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Table is a partial override of the canonical parameter set. Fields
// left nil keep their default values, so a table carrying a single
// entry is valid. The JSON schema mirrors the historical parameter
// table field names.
type Table struct {
	Rsun *float64 `json:"rsun,omitempty"`

	N1h1 *float64 `json:"n1h1,omitempty"`
	H1   *float64 `json:"h1,omitempty"`
	A1   *float64 `json:"a1,omitempty"`
	F1   *float64 `json:"f1,omitempty"`

	N2 *float64 `json:"n2,omitempty"`
	H2 *float64 `json:"h2,omitempty"`
	A2 *float64 `json:"a2,omitempty"`
	F2 *float64 `json:"f2,omitempty"`

	Na *float64 `json:"na,omitempty"`
	Ha *float64 `json:"ha,omitempty"`
	Wa *float64 `json:"wa,omitempty"`
	Aa *float64 `json:"aa,omitempty"`
	Fa *float64 `json:"fa,omitempty"`

	NarmScale []float64 `json:"narm,omitempty"`
	WarmScale []float64 `json:"warm,omitempty"`
	HarmScale []float64 `json:"harm,omitempty"`
	FarmScale []float64 `json:"farm,omitempty"`

	GCX      *float64 `json:"gc_x,omitempty"`
	GCY      *float64 `json:"gc_y,omitempty"`
	GCZ      *float64 `json:"gc_z,omitempty"`
	GCRadius *float64 `json:"gc_radius,omitempty"`
	GCHeight *float64 `json:"gc_height,omitempty"`
	GCNe0    *float64 `json:"gc_ne0,omitempty"`
	GCF0     *float64 `json:"gc_f0,omitempty"`

	WeightThickDisk *float64 `json:"weight_thick_disk,omitempty"`
	WeightThinDisk  *float64 `json:"weight_thin_disk,omitempty"`
	WeightArms      *float64 `json:"weight_arms,omitempty"`
	WeightGC        *float64 `json:"weight_gc,omitempty"`
	WeightLISM      *float64 `json:"weight_lism,omitempty"`
	WeightVoids     *float64 `json:"weight_voids,omitempty"`
	WeightClumps    *float64 `json:"weight_clumps,omitempty"`
}

// LoadTable reads a Table from a JSON file. Unknown keys are rejected so
// a typo in a parameter name fails loudly instead of silently keeping
// the default.
func LoadTable(path string) (*Table, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("%w: parameter table must be a .json file, got %q",
			ErrConfiguration, ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading parameter table: %v", ErrConfiguration, err)
	}
	var t Table
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: parsing parameter table %s: %v", ErrConfiguration, cleanPath, err)
	}
	return &t, nil
}

// apply overlays the non-nil entries of t onto p.
func (t *Table) apply(p *GalacticParameters) error {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Rsun, t.Rsun)
	set(&p.N1h1, t.N1h1)
	set(&p.H1, t.H1)
	set(&p.A1, t.A1)
	set(&p.F1, t.F1)
	set(&p.N2, t.N2)
	set(&p.H2, t.H2)
	set(&p.A2, t.A2)
	set(&p.F2, t.F2)
	set(&p.Na, t.Na)
	set(&p.Ha, t.Ha)
	set(&p.Wa, t.Wa)
	set(&p.Aa, t.Aa)
	set(&p.Fa, t.Fa)
	set(&p.GCX, t.GCX)
	set(&p.GCY, t.GCY)
	set(&p.GCZ, t.GCZ)
	set(&p.GCRadius, t.GCRadius)
	set(&p.GCHeight, t.GCHeight)
	set(&p.GCNe0, t.GCNe0)
	set(&p.GCF0, t.GCF0)
	set(&p.WeightThickDisk, t.WeightThickDisk)
	set(&p.WeightThinDisk, t.WeightThinDisk)
	set(&p.WeightArms, t.WeightArms)
	set(&p.WeightGC, t.WeightGC)
	set(&p.WeightLISM, t.WeightLISM)
	set(&p.WeightVoids, t.WeightVoids)
	set(&p.WeightClumps, t.WeightClumps)

	for name, pair := range map[string]struct {
		src []float64
		dst *[NumArms]float64
	}{
		"narm": {t.NarmScale, &p.NarmScale},
		"warm": {t.WarmScale, &p.WarmScale},
		"harm": {t.HarmScale, &p.HarmScale},
		"farm": {t.FarmScale, &p.FarmScale},
	} {
		if pair.src == nil {
			continue
		}
		if len(pair.src) != NumArms {
			return fmt.Errorf("%w: %s must list %d per-arm values, got %d",
				ErrConfiguration, name, NumArms, len(pair.src))
		}
		copy(pair.dst[:], pair.src)
	}
	return nil
}
