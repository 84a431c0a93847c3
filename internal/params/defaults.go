package params

// defaults returns the canonical structural-constant set for the default
// model version. These are versioned static data: changing any value is
// a model revision, not a tuning knob.
func defaults() *GalacticParameters {
	return &GalacticParameters{
		Rsun: 8.5,

		// Thick disk
		N1h1: 0.033, H1: 0.97, A1: 17.5, F1: 0.18,
		// Thin disk annulus
		N2: 0.08, H2: 0.15, A2: 3.8, F2: 120,
		// Spiral arms
		Na: 0.028, Ha: 0.23, Wa: 0.65, Aa: 10.5, Fa: 5,

		NarmScale: [NumArms]float64{0.5, 1.2, 1.3, 1.0, 0.25},
		WarmScale: [NumArms]float64{1.0, 1.5, 1.0, 0.8, 1.0},
		HarmScale: [NumArms]float64{1.0, 1.0, 1.0, 1.0, 1.0},
		FarmScale: [NumArms]float64{1.1, 0.3, 0.4, 1.5, 0.3},

		// Galactic-centre ellipsoid
		GCX: -0.01, GCY: 0.0, GCZ: -0.020,
		GCRadius: 0.145, GCHeight: 0.026,
		GCNe0: 10.0, GCF0: 0.6e5,

		WeightThickDisk: 1,
		WeightThinDisk:  1,
		WeightArms:      1,
		WeightGC:        1,
		WeightLISM:      1,
		WeightVoids:     1,
		WeightClumps:    1,
	}
}
