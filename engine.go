package simcell

import (
	"context"
	"math"
)

// Engine is the Monte Carlo engine (C5): seeding, the time-step loop, and
// one-trial proposal/evaluation/commit, driven by a Variant's Hamiltonian
// and acceptance rule.
type Engine struct {
	cfg     *Config
	rng     RandomSource
	index   *SpatialIndex
	variant Variant
	drugs   *DrugScheduler
	logger  Logger

	growthSamplers map[CellTypeID]GrowthRateSampler

	time float64
	step int
}

// NewEngine builds an Engine over an empty index; call Seed before Step.
// bucketSize should bound the largest cell's full extent so that a single
// bucket radius always covers any cell's own body (spec §9: (1-1e-9) times
// the largest axisLength any configured cell type can reach).
func NewEngine(cfg *Config, rng RandomSource, variant Variant, drugs *DrugScheduler, growthSamplers map[CellTypeID]GrowthRateSampler, logger Logger, bucketSize float64) *Engine {
	return &Engine{
		cfg:            cfg,
		rng:            rng,
		index:          NewSpatialIndex(bucketSize),
		variant:        variant,
		drugs:          drugs,
		logger:         logger,
		growthSamplers: growthSamplers,
	}
}

// Index exposes the engine's spatial index, mainly for the recorder.
func (e *Engine) Index() *SpatialIndex { return e.index }

// Time returns the simulation time reached so far.
func (e *Engine) Time() float64 { return e.time }

// Seed populates the index with cfg.InitialNum cells drawn from types,
// rejection-sampling positions within a disc sized to hit the configured
// density (spec §4.3 "Seeding").
func (e *Engine) Seed(ctx context.Context, types []*CellType) error {
	cells := make([]*Cell, 0, e.cfg.InitialNum)
	totalArea := 0.0
	for i := 0; i < e.cfg.InitialNum; i++ {
		t := types[e.rng.Intn(len(types))]
		cycleLength, err := t.sampleCycleLength(e.rng)
		if err != nil {
			return err
		}
		growthRate := e.sampleGrowthRate(t.ID)
		c := NewCell(t, e.rng, cycleLength, growthRate)
		if e.cfg.SyncCellCycle {
			// stays at the NewCell default: minimum-radius interphase.
		} else {
			c.GotoRandomCyclePoint(e.rng)
		}
		totalArea += c.Area()
		cells = append(cells, c)
	}

	seedingRadius := math.Sqrt(totalArea / (math.Pi * e.cfg.Density))

	for _, c := range cells {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := seedingRadius * math.Sqrt(e.rng.Uniform(0, 1))
			theta := e.rng.Uniform(0, 2*math.Pi)
			c.Coordinates = NewPoint(r*math.Cos(theta), r*math.Sin(theta))

			if e.checkOverlap(c) {
				continue
			}
			if !e.checkBoundary(c) {
				continue
			}
			break
		}
		e.index.Insert(c)
	}

	e.logger.Infof("seeded %d cells within radius %.4g", len(cells), seedingRadius)
	return nil
}

func (e *Engine) sampleGrowthRate(id CellTypeID) float64 {
	if sampler, ok := e.growthSamplers[id]; ok && sampler != nil {
		return sampler(e.rng)
	}
	return DefaultGrowthRateSampler(0, e.cfg.MaxDeformation)(e.rng)
}

// Step advances the simulation by one time step: apply drugs, then run
// exactly N = index.Size() Monte Carlo steps (spec §4.3 "Time step").
func (e *Engine) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.drugs.ApplyDrugs(e.time, e.index)

	n := e.index.Size()
	for i := 0; i < n; i++ {
		if err := e.mcStep(); err != nil {
			return err
		}
	}

	e.time += e.cfg.TimeIncrement
	e.step++
	return nil
}

func (e *Engine) mcStep() error {
	c, ok := e.index.RandomValue(e.rng)
	if !ok {
		return nil
	}

	orig := c.snapshot()
	preEnergy := e.variant.CalculateHamiltonian(c, e.index)
	preNeighbors := e.variant.NumNeighbors(c, e.index)

	kind := e.variant.AttemptTrial(c, e.rng)
	isGrowth := kind == TrialGrowth
	e.propose(c, kind)

	if e.checkOverlap(c) || !e.checkBoundary(c) {
		c.restore(orig)
		if isGrowth {
			c.AddToTrialRecord(false)
		}
		return nil
	}

	e.index.Update(c)
	postEnergy := e.variant.CalculateHamiltonian(c, e.index)
	postNeighbors := e.variant.NumNeighbors(c, e.index)

	accepted := isGrowth
	if !isGrowth {
		accepted = e.variant.AcceptTrial(preEnergy, postEnergy, preNeighbors, postNeighbors, e.rng)
	}
	if !accepted {
		c.restore(orig)
		e.index.Update(c)
	}
	if isGrowth {
		c.AddToTrialRecord(accepted)
	}

	if accepted && c.ReadyToDivide {
		return e.divide(c)
	}
	return nil
}

func (e *Engine) divide(c *Cell) error {
	cycleLength, err := c.Type.sampleCycleLength(e.rng)
	if err != nil {
		return err
	}
	daughterCycleLength, err := c.Type.sampleCycleLength(e.rng)
	if err != nil {
		return err
	}

	daughter := &Cell{}
	c.Divide(daughter, e.rng)
	c.CycleLength = cycleLength
	daughter.CycleLength = daughterCycleLength

	e.index.Update(c)
	e.index.Insert(daughter)
	return nil
}

// propose mutates c in place according to kind's geometry (spec §4.3 "Trial
// proposals"). The caller is responsible for checking constraints and
// reverting if they fail.
func (e *Engine) propose(c *Cell, kind TrialKind) {
	switch kind {
	case TrialGrowth:
		delta := e.rng.Uniform(0, e.variant.MaxGrowth(c))
		newRadius := math.Min(c.Radius+delta, c.Type.MaxRadius())
		c.SetRadius(newRadius)
		if newRadius >= c.Type.MaxRadius() {
			c.Phase = Mitosis
		}

	case TrialTranslation:
		length := e.cfg.MaxTranslation * math.Sqrt(e.rng.Uniform(0, 1))
		theta := e.rng.Uniform(0, 2*math.Pi)
		c.Coordinates = c.Coordinates.Add(NewPoint(length*math.Cos(theta), length*math.Sin(theta)))

	case TrialDeformation:
		delta := e.rng.Uniform(0, e.variant.MaxDeformation(c))
		newLength := math.Min(c.AxisLength+delta, c.Type.MaxAxisLength())
		_ = c.SetAxisLength(newLength)
		if newLength >= c.Type.MaxAxisLength() {
			c.ReadyToDivide = true
		}

	case TrialRotation:
		delta := e.rng.Uniform(-e.cfg.MaxRotation, e.cfg.MaxRotation)
		c.AxisAngle += delta / math.Sqrt(c.Type.Size)
	}
}

// checkOverlap reports whether c, at its current (proposed) position,
// intersects any other cell (spec §4.3 "Overlap check").
func (e *Engine) checkOverlap(c *Cell) bool {
	overlap := false
	radius := 4*c.Type.MaxRadius() + e.cfg.MaxTranslation
	e.index.ForEachLocal(c.Coordinates, radius, func(other *Cell) {
		if overlap || other == c {
			return
		}
		if c.Distance(other) < 0 {
			overlap = true
		}
	})
	return overlap
}

// checkBoundary reports whether c's lobes stay within the configured
// circular confinement (always true when BoundaryRadius is 0).
func (e *Engine) checkBoundary(c *Cell) bool {
	if e.cfg.BoundaryRadius <= 0 {
		return true
	}
	origin := NewPoint(0, 0)
	a, b := c.Centers()
	return Distance(a, origin)+c.Radius <= e.cfg.BoundaryRadius &&
		Distance(b, origin)+c.Radius <= e.cfg.BoundaryRadius
}
