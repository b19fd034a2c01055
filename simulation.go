package simcell

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Result is the structured object a run hands back to the host (spec §6
// "Outputs"): the ordered snapshot sequence plus run metadata.
type Result struct {
	RunID           uuid.UUID
	Seed            int64
	StepsCompleted  int
	Duration        time.Duration
	FinalPopulation int
	Cancelled       bool

	Times     []float64
	Snapshots [][]Snapshot
}

// Simulation is the facade (C9) that validates configuration, wires
// C1-C8 together, and drives Run, surfacing logging/errors/cancellation to
// the host.
type Simulation struct {
	cfg      *Config
	logger   Logger
	runID    uuid.UUID
	types    []*CellType
	typeByName map[string]*CellType
	engine   *Engine
	recorder *Recorder
}

// NewSimulation validates cfg and builds every collaborator C1-C8 need: the
// type registry, growth-rate samplers, the named variant, the drug
// scheduler, and the Monte Carlo engine. It does not seed or run anything.
func NewSimulation(cfg *Config, logger Logger) (*Simulation, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	types := make([]*CellType, 0, len(cfg.CellTypes))
	typeByName := make(map[string]*CellType, len(cfg.CellTypes))
	growthSamplers := make(map[CellTypeID]GrowthRateSampler, len(cfg.CellTypes))
	maxAxisLength := 0.0

	for i, tc := range cfg.CellTypes {
		t := &CellType{
			ID:          CellTypeID(i),
			Name:        tc.Name,
			Size:        tc.Size,
			MinCycle:    tc.MinCycle,
			CycleLength: tc.CycleLength,
		}
		types = append(types, t)
		typeByName[t.Name] = t
		if tc.GrowthRate != nil {
			growthSamplers[t.ID] = tc.GrowthRate
		}
		if l := t.MaxAxisLength(); l > maxAxisLength {
			maxAxisLength = l
		}
	}

	drugs := make([]Drug, 0, len(cfg.Drugs))
	for _, dc := range cfg.Drugs {
		effect := make(map[CellTypeID]float64, len(dc.EffectByType))
		for name, scale := range dc.EffectByType {
			effect[typeByName[name].ID] = scale
		}
		drugs = append(drugs, NewDrug(dc.Name, dc.TimeAdded, effect))
	}

	variant, err := NewVariant(cfg.Variant, cfg)
	if err != nil {
		return nil, err
	}

	const bucketTol = 1e-9
	bucketSize := (1 - bucketTol) * maxAxisLength

	runID := uuid.New()
	engine := NewEngine(cfg, NewRandomSource(cfg.Seed), variant, NewDrugScheduler(drugs), growthSamplers, logger, bucketSize)

	return &Simulation{
		cfg:        cfg,
		logger:     logger,
		runID:      runID,
		types:      types,
		typeByName: typeByName,
		engine:     engine,
		recorder:   &Recorder{},
	}, nil
}

// RunID returns the UUID this Simulation's run is tagged with in logs and
// in Result.
func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Run seeds the population and executes cfg.NumSteps time steps, recording a
// snapshot every cfg.OutputIncrement steps. If ctx is cancelled or its
// deadline passes mid-run, it returns a Result with Cancelled set (holding
// the snapshots recorded so far) and a nil error.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	s.logger.Infof("run %s starting: seed=%d variant=%s", s.runID, s.cfg.Seed, s.cfg.Variant)

	if err := s.engine.Seed(ctx, s.types); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.cancelledResult(start), nil
		}
		return Result{}, err
	}

	completed := 0
	for step := 0; step < s.cfg.NumSteps; step++ {
		if err := s.engine.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return s.cancelledResult(start), nil
			}
			return Result{}, err
		}
		completed++

		if s.cfg.OutputIncrement > 0 && completed%s.cfg.OutputIncrement == 0 {
			s.recorder.Record(s.engine.Time(), s.engine.Index())
			s.logger.Infof("run %s: step %d/%d, population=%d", s.runID, completed, s.cfg.NumSteps, s.engine.Index().Size())
		}
	}

	times, snapshots := s.recorder.Snapshots()
	s.logger.Infof("run %s complete: %d steps, final population %d", s.runID, completed, s.engine.Index().Size())

	return Result{
		RunID:           s.runID,
		Seed:            s.cfg.Seed,
		StepsCompleted:  completed,
		Duration:        time.Since(start),
		FinalPopulation: s.engine.Index().Size(),
		Times:           times,
		Snapshots:       snapshots,
	}, nil
}

func (s *Simulation) cancelledResult(start time.Time) Result {
	times, snapshots := s.recorder.Snapshots()
	s.logger.Warnf("run %s cancelled after %s", s.runID, time.Since(start))
	return Result{
		RunID:     s.runID,
		Seed:      s.cfg.Seed,
		Duration:  time.Since(start),
		Cancelled: true,
		Times:     times,
		Snapshots: snapshots,
	}
}
