package simcell

import "math"

// CellTypeConfig describes one cell type as supplied by the host, before it
// is resolved into a registered CellType (spec §6 "cell-type descriptor").
type CellTypeConfig struct {
	Name        string
	Size        float64
	MinCycle    float64
	CycleLength CycleLengthSampler // optional; defaults to DefaultCycleLengthSampler(MinCycle)
	GrowthRate  GrowthRateSampler  // optional; defaults to DefaultGrowthRateSampler(0, cfg.MaxDeformation)
}

// DrugConfig describes one scheduled drug, with its per-cell-type effect
// keyed by cell type name (resolved to CellTypeID when the Simulation builds
// its registry).
type DrugConfig struct {
	Name         string
	TimeAdded    float64
	EffectByType map[string]float64
}

// Config is the structured parameter object C9 validates and C5 consumes
// (spec §6). Every field here is named directly in the spec's external
// interfaces section.
type Config struct {
	// Population seeding.
	InitialNum int
	Density    float64 // target area fraction for seeding, in (0, 1]

	// Trial geometry bounds.
	MaxTranslation float64
	MaxRotation    float64
	MaxDeformation float64

	// Hamiltonian constants consumed opaquely by the model variant.
	Epsilon float64
	Delta   float64

	// Time control.
	TimeIncrement   float64
	NumSteps        int
	OutputIncrement int // record a snapshot every this many steps; 0 disables recording

	// Growth throttle.
	NG            float64 // growth-trial bound multiplier, compensating for growth's lower attempt frequency
	InheritGrowth bool    // scale MaxGrowth/MaxDeformation by a cell's own trial acceptance ratio

	// Optional circular confinement; 0 means unbounded.
	BoundaryRadius float64

	SyncCellCycle bool // seed every cell at minimum interphase radius instead of a random cycle point

	Seed int64

	CellTypes []CellTypeConfig
	Drugs     []DrugConfig
	Variant   string
}

// Validate walks every recognised field and returns the first configuration
// error found, or nil. Called by NewSimulation before any RNG state is
// touched (spec §8 "Configuration & validation").
func (c *Config) Validate() error {
	if c.InitialNum <= 0 {
		return configErrorf("InitialNum", "must be positive, got %d", c.InitialNum)
	}
	if c.Density <= 0 || c.Density > 1 {
		return configErrorf("Density", "must be in (0, 1], got %g", c.Density)
	}
	if c.MaxTranslation < 0 || c.MaxRotation < 0 || c.MaxDeformation < 0 {
		return configErrorf("MaxTranslation/MaxRotation/MaxDeformation", "must be non-negative")
	}
	if c.Epsilon <= 0 {
		return configErrorf("Epsilon", "must be positive, got %g", c.Epsilon)
	}
	if c.Delta <= 0 || c.Delta > 1 {
		return configErrorf("Delta", "must be in (0, 1], got %g", c.Delta)
	}
	if c.TimeIncrement <= 0 {
		return configErrorf("TimeIncrement", "must be positive, got %g", c.TimeIncrement)
	}
	if c.NumSteps < 0 {
		return configErrorf("NumSteps", "must be non-negative, got %d", c.NumSteps)
	}
	if c.OutputIncrement < 0 {
		return configErrorf("OutputIncrement", "must be non-negative, got %d", c.OutputIncrement)
	}
	if c.NG <= 0 {
		return configErrorf("NG", "must be positive, got %g", c.NG)
	}
	if c.BoundaryRadius < 0 {
		return configErrorf("BoundaryRadius", "must be non-negative (0 means unbounded), got %g", c.BoundaryRadius)
	}
	if math.IsNaN(c.BoundaryRadius) || math.IsInf(c.BoundaryRadius, 0) {
		return configErrorf("BoundaryRadius", "must be finite")
	}
	if len(c.CellTypes) == 0 {
		return configErrorf("CellTypes", "must list at least one cell type")
	}

	names := make(map[string]bool, len(c.CellTypes))
	for _, ct := range c.CellTypes {
		if ct.Name == "" {
			return configErrorf("CellTypes", "every cell type needs a name")
		}
		if names[ct.Name] {
			return configErrorf("CellTypes", "duplicate cell type name %q", ct.Name)
		}
		names[ct.Name] = true
		if ct.Size <= 0 {
			return configErrorf("CellTypes["+ct.Name+"].Size", "must be positive, got %g", ct.Size)
		}
		if ct.MinCycle <= 0 {
			return configErrorf("CellTypes["+ct.Name+"].MinCycle", "must be positive, got %g", ct.MinCycle)
		}
	}

	for _, d := range c.Drugs {
		if d.Name == "" {
			return configErrorf("Drugs", "every drug needs a name")
		}
		if d.TimeAdded < 0 {
			return configErrorf("Drugs["+d.Name+"].TimeAdded", "must be non-negative, got %g", d.TimeAdded)
		}
		for typeName := range d.EffectByType {
			if !names[typeName] {
				return configErrorf("Drugs["+d.Name+"].EffectByType", "references unknown cell type %q", typeName)
			}
		}
	}

	if c.Variant == "" {
		return configErrorf("Variant", "must name a model variant")
	}
	if _, ok := variantRegistry[c.Variant]; !ok {
		return configErrorf("Variant", "unknown model variant %q", c.Variant)
	}

	return nil
}
