package simcell

import "gonum.org/v1/gonum/floats"

// Snapshot is the per-cell tuple recorded at each output interval (spec §3
// "Population snapshot").
type Snapshot struct {
	X, Y        float64
	Radius      float64
	AxisLength  float64
	AxisAngle   float64
	CycleLength float64
	Phase       Phase
	TypeID      CellTypeID
	TrialRatio  float64
}

// Recorder owns the growing, append-only buffer of population snapshots
// (C7). One Record call corresponds to one "recording event".
type Recorder struct {
	time      []float64
	snapshots [][]Snapshot
}

// Record appends a snapshot of every cell currently in index, tagged with
// the simulation time it was taken at.
func (r *Recorder) Record(time float64, index *SpatialIndex) {
	cells := index.All()
	snap := make([]Snapshot, len(cells))
	for i, c := range cells {
		snap[i] = Snapshot{
			X:           c.Coordinates.X(),
			Y:           c.Coordinates.Y(),
			Radius:      c.Radius,
			AxisLength:  c.AxisLength,
			AxisAngle:   c.AxisAngle,
			CycleLength: c.CycleLength,
			Phase:       c.Phase,
			TypeID:      c.Type.ID,
			TrialRatio:  c.GetTrialRecord(),
		}
	}
	r.time = append(r.time, time)
	r.snapshots = append(r.snapshots, snap)
}

// Snapshots returns the recorded times and the parallel slice of
// per-recording-event population snapshots.
func (r *Recorder) Snapshots() (times []float64, snapshots [][]Snapshot) {
	return r.time, r.snapshots
}

// TotalArea sums the current footprint area of every cell in index, a cheap
// population-level diagnostic. It reads the live index, not a recorded
// snapshot, and the recorder does not store its result.
func (r *Recorder) TotalArea(index *SpatialIndex) float64 {
	cells := index.All()
	areas := make([]float64, len(cells))
	for i, c := range cells {
		areas[i] = c.Area()
	}
	return floats.Sum(areas)
}
