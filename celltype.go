package simcell

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CellTypeID is a small unique integer identifying a registered CellType.
type CellTypeID int

// CycleLengthSampler draws a cell-cycle length. Implementations may return
// any real >= the CellType's minCycle; a result below minCycle is a
// sampler-contract error (spec §7), not something the core tries to repair.
type CycleLengthSampler func(rng RandomSource) (float64, error)

// GrowthRateSampler draws a per-cell growth-rate scale, used by variants that
// honour the config's growth-rate distribution (spec §6).
type GrowthRateSampler func(rng RandomSource) float64

// CellType is an immutable descriptor shared by every cell of that type.
type CellType struct {
	ID          CellTypeID
	Name        string
	Size        float64
	MinCycle    float64
	CycleLength CycleLengthSampler
}

// MinRadius and MaxRadius are the interphase radius bounds for this type.
func (t *CellType) MinRadius() float64 { return math.Sqrt(t.Size) }
func (t *CellType) MaxRadius() float64 { return math.Sqrt(2 * t.Size) }

// MaxAxisLength is the axis length at which a mitotic cell becomes ready to divide.
func (t *CellType) MaxAxisLength() float64 { return math.Sqrt(16 * t.Size) }

// MinMitoticAxisLength is the axis length at which interphase growth caps out
// and a cell transitions into mitosis.
func (t *CellType) MinMitoticAxisLength() float64 { return math.Sqrt(8 * t.Size) }

// sampleCycleLength draws a cycle length and enforces the sampler contract.
func (t *CellType) sampleCycleLength(rng RandomSource) (float64, error) {
	sampler := t.CycleLength
	if sampler == nil {
		sampler = DefaultCycleLengthSampler(t.MinCycle)
	}
	length, err := sampler(rng)
	if err != nil {
		return 0, samplerErrorf(t.Name, err, "cycle length sampler failed")
	}
	if math.IsNaN(length) || math.IsInf(length, 0) {
		return 0, samplerErrorf(t.Name, nil, "cycle length sampler returned a non-finite value")
	}
	if length < t.MinCycle {
		return 0, samplerErrorf(t.Name, nil, "cycle length %g is less than minimum %g", length, t.MinCycle)
	}
	return length, nil
}

// DefaultCycleLengthSampler returns a CycleLengthSampler backed by a normal
// distribution centered two minimum-cycles out, resampling until the draw
// clears minCycle. This is the sampler a CellType gets when the host doesn't
// supply its own (spec §6 treats the sampler as an external collaborator;
// this is simcell's default implementation of that collaborator).
func DefaultCycleLengthSampler(minCycle float64) CycleLengthSampler {
	dist := distuv.Normal{Mu: 2 * minCycle, Sigma: 0.25 * minCycle}
	const maxAttempts = 64
	return func(rng RandomSource) (float64, error) {
		dist.Src = rng.Source()
		for attempt := 0; attempt < maxAttempts; attempt++ {
			v := dist.Rand()
			if v >= minCycle {
				return v, nil
			}
		}
		// Resampling failed to clear the floor; fall back to a value the
		// caller can still use rather than spinning forever.
		return minCycle, nil
	}
}

// DefaultGrowthRateSampler returns a GrowthRateSampler backed by a uniform
// distribution over [lo, hi), the shape the "per-type growth-rate
// distribution" external collaborator in spec §6 is expected to have.
func DefaultGrowthRateSampler(lo, hi float64) GrowthRateSampler {
	dist := distuv.Uniform{Min: lo, Max: hi}
	return func(rng RandomSource) float64 {
		dist.Src = rng.Source()
		return dist.Rand()
	}
}
