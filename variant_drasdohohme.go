package simcell

import "math"

// drasdoHohme is the shipped concrete Hamiltonian (spec §4.4 "Shipped
// variant"): a pairwise elastic compression energy between cells whose
// bodies are closer than a configured fraction of their combined radii.
// The original DrasdoHohmeModel formula was not available in the retrieved
// source; this is a physically-motivated reconstruction documented in
// DESIGN.md, not a port.
type drasdoHohme struct {
	epsilon, delta float64
	maxDeformation float64
	ng             float64
	inheritGrowth  bool
}

func newDrasdoHohme(cfg *Config) (Variant, error) {
	return &drasdoHohme{
		epsilon:        cfg.Epsilon,
		delta:          cfg.Delta,
		maxDeformation: cfg.MaxDeformation,
		ng:             cfg.NG,
		inheritGrowth:  cfg.InheritGrowth,
	}, nil
}

// interactionRadius returns the real-world distance within which two cells
// of c's type can contribute to each other's Hamiltonian (spec: "4*maxRadius").
func interactionRadius(c *Cell) float64 {
	return 4 * c.Type.MaxRadius()
}

func (v *drasdoHohme) CalculateHamiltonian(c *Cell, index *SpatialIndex) Energy {
	total := 0.0
	threshold := v.delta
	index.ForEachLocal(c.Coordinates, interactionRadius(c), func(other *Cell) {
		if other == c {
			return
		}
		d := c.Distance(other)
		combined := c.Radius + other.Radius
		if d >= threshold*combined {
			return
		}
		compression := 1 - d/combined
		total += v.epsilon * compression * compression
	})
	return FiniteEnergy(total)
}

func (v *drasdoHohme) NumNeighbors(c *Cell, index *SpatialIndex) int {
	n := 0
	radius := interactionRadius(c)
	index.ForEachLocal(c.Coordinates, radius, func(other *Cell) {
		if other != c && Distance(c.Coordinates, other.Coordinates) <= radius {
			n++
		}
	})
	return n
}

// AttemptTrial picks uniformly among the trial kinds eligible for c's
// current phase. Growth and deformation are weighted by the cell's own
// trial-acceptance ratio so cells that keep getting rejected retry growth
// less often, per nG.
func (v *drasdoHohme) AttemptTrial(c *Cell, rng RandomSource) TrialKind {
	type weighted struct {
		kind   TrialKind
		weight float64
	}
	var choices []weighted
	choices = append(choices, weighted{TrialTranslation, 1})
	choices = append(choices, weighted{TrialRotation, 1})
	if c.Phase == Interphase {
		choices = append(choices, weighted{TrialGrowth, c.GetTrialRecord()})
	}
	if c.Phase == Mitosis {
		choices = append(choices, weighted{TrialDeformation, c.GetTrialRecord()})
	}

	sum := 0.0
	for _, ch := range choices {
		sum += ch.weight
	}
	draw := rng.Uniform(0, sum)
	for _, ch := range choices {
		if draw < ch.weight {
			return ch.kind
		}
		draw -= ch.weight
	}
	return choices[len(choices)-1].kind
}

func (v *drasdoHohme) AcceptTrial(preEnergy, postEnergy Energy, preNeighbors, postNeighbors int, rng RandomSource) bool {
	if postEnergy.Infinite {
		return false
	}
	if preEnergy.Infinite || postEnergy.Value <= preEnergy.Value {
		return true
	}
	p := math.Exp(-(postEnergy.Value - preEnergy.Value))
	return rng.Uniform(0, 1) < p
}

func (v *drasdoHohme) growthScale(c *Cell) float64 {
	if !v.inheritGrowth {
		return 1
	}
	return c.GetTrialRecord()
}

func (v *drasdoHohme) MaxGrowth(c *Cell) float64 {
	return c.GrowthRate * v.ng * v.growthScale(c)
}

func (v *drasdoHohme) MaxDeformation(c *Cell) float64 {
	return v.maxDeformation * v.growthScale(c)
}
