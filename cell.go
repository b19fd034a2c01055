package simcell

import "math"

// Phase is the cell-cycle phase of a Cell.
type Phase int

const (
	Interphase Phase = iota
	Mitosis
)

func (p Phase) String() string {
	if p == Mitosis {
		return "MITOSIS"
	}
	return "INTERPHASE"
}

// trialRecord tracks a cell's recent growth-trial acceptance rate, used to
// throttle growth attempts once enough trials have accumulated.
type trialRecord struct {
	accepted int
	total    int
}

func (r *trialRecord) clear() { r.accepted, r.total = 0, 0 }

func (r *trialRecord) add(result bool) {
	r.total++
	if result {
		r.accepted++
	}
}

// ratio returns 1 during warm-up (fewer than 5 recorded trials), else the
// acceptance fraction.
func (r *trialRecord) ratio() float64 {
	if r.total < 5 {
		return 1
	}
	return float64(r.accepted) / float64(r.total)
}

// Cell is the mutable, per-cell simulation state owned exclusively by the
// spatial index it lives in.
type Cell struct {
	Coordinates Point
	Radius      float64
	AxisLength  float64
	AxisAngle   float64
	Phase       Phase
	ReadyToDivide bool
	CycleLength float64
	GrowthRate  float64
	Type        *CellType

	trial        trialRecord
	drugsApplied map[DrugID]struct{}

	// handle is not read or written anywhere: the spatial index tracks each
	// cell's dense-slice position in its own denseIndex map.
	handle int
}

// NewCell builds an interphase cell of the given type at the origin, at
// minimum radius, with a random axis orientation.
func NewCell(t *CellType, rng RandomSource, cycleLength, growthRate float64) *Cell {
	return &Cell{
		Radius:      t.MinRadius(),
		AxisLength:  2 * t.MinRadius(),
		AxisAngle:   rng.Uniform(0, 2*math.Pi),
		Phase:       Interphase,
		CycleLength: cycleLength,
		GrowthRate:  growthRate,
		Type:        t,
	}
}

// SetRadius sets the cell's radius and, per the interphase invariant, derives
// axisLength = 2*radius.
func (c *Cell) SetRadius(r float64) {
	c.Radius = r
	c.AxisLength = 2 * r
}

// SetAxisLength sets a mitotic cell's axis length and re-derives its radius
// so that the dumbbell's total area stays constant (spec §9 Design Notes).
// len must be >= sqrt(8*size); see DESIGN.md for the area-conservation model.
func (c *Cell) SetAxisLength(length float64) error {
	minMitotic := c.Type.MinMitoticAxisLength()
	if length < minMitotic {
		return invariantErrorf("SetAxisLength: %g is below the mitotic minimum %g", length, minMitotic)
	}
	c.AxisLength = length
	c.Radius = radiusForAxisLength(length, c.Type.Size)
	return nil
}

// radiusForAxisLength solves for the lobe radius r such that two circles of
// radius r, whose centers are axisLength-2r apart, have a union area equal to
// 2*pi*size — the area of the single interphase disc the mitotic cell grew
// from. See DESIGN.md "Radius <-> axis-length inversion" for the derivation.
// Solved by bisection rather than a closed form or a lookup table, converging
// to well under the spec's 1e-6 relative-error bar.
func radiusForAxisLength(axisLength, size float64) float64 {
	target := 2 * math.Pi * size
	lo, hi := math.Sqrt(size), math.Sqrt(2*size)

	f := func(r float64) float64 {
		return lobeUnionArea(r, axisLength-2*r) - target
	}

	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo
	}
	if fhi == 0 {
		return hi
	}
	// f is monotone across [lo, hi]; if rounding puts both samples on the
	// same side, the root is at whichever endpoint is closer to zero.
	if (flo > 0) == (fhi > 0) {
		if math.Abs(flo) < math.Abs(fhi) {
			return lo
		}
		return hi
	}

	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		fm := f(mid)
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// lobeUnionArea is the area of the union of two circles of radius r whose
// centers are d apart (the dumbbell's two lobes).
func lobeUnionArea(r, d float64) float64 {
	if d <= 0 {
		d = 0
	}
	if d >= 2*r {
		return 2 * math.Pi * r * r
	}
	ratio := d / (2 * r)
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	overlap := 2*r*r*math.Acos(ratio) - (d/2)*math.Sqrt(4*r*r-d*d)
	return 2*math.Pi*r*r - overlap
}

// Centers returns the two lobe centers of the cell's dumbbell body.
func (c *Cell) Centers() (Point, Point) {
	halfSep := (c.AxisLength/2 - c.Radius)
	offset := lobeOffset(halfSep, c.AxisAngle)
	return c.Coordinates.Add(offset), c.Coordinates.Sub(offset)
}

// Distance returns the edge-to-edge distance between this cell and other:
// the smallest of the four lobe-center pair distances, minus both radii.
// Negative means the cells overlap.
func (c *Cell) Distance(other *Cell) float64 {
	a1, a2 := c.Centers()
	b1, b2 := other.Centers()

	min := Distance(a1, b1)
	if d := Distance(a1, b2); d < min {
		min = d
	}
	if d := Distance(a2, b1); d < min {
		min = d
	}
	if d := Distance(a2, b2); d < min {
		min = d
	}
	return min - c.Radius - other.Radius
}

// Divide splits c into two fresh interphase cells at c's current lobe
// centers: daughter takes one lobe, c becomes the other. Both get a minimum
// radius and a freshly drawn axis angle.
func (c *Cell) Divide(daughter *Cell, rng RandomSource) {
	first, second := c.Centers()

	daughter.Coordinates = first
	daughter.Type = c.Type
	daughter.GrowthRate = c.GrowthRate
	daughter.Phase = Interphase
	daughter.ReadyToDivide = false
	daughter.AxisAngle = rng.Uniform(0, 2*math.Pi)
	daughter.SetRadius(c.Type.MinRadius())
	daughter.trial.clear()
	daughter.drugsApplied = nil

	c.Coordinates = second
	c.SetRadius(c.Type.MinRadius())
	c.AxisAngle = rng.Uniform(0, 2*math.Pi)
	c.Phase = Interphase
	c.ReadyToDivide = false
	c.trial.clear()
}

// GotoRandomCyclePoint places the cell at a uniformly random point in its
// cell cycle: interphase with probability 1 - 2/(cycleLength+2), otherwise a
// random point in mitosis (spec §4.2, scenario S4).
func (c *Cell) GotoRandomCyclePoint(rng RandomSource) {
	chance := 1 - 2/(c.CycleLength+2)
	if rng.Uniform(0, 1) < chance {
		c.Phase = Interphase
		c.SetRadius(rng.Uniform(c.Type.MinRadius(), c.Type.MaxRadius()))
	} else {
		c.Phase = Mitosis
		length := rng.Uniform(c.Type.MinMitoticAxisLength(), c.Type.MaxAxisLength())
		// SetAxisLength cannot fail here: length is drawn from exactly the
		// range it requires.
		_ = c.SetAxisLength(length)
	}
}

// GetTrialRecord returns the cell's current growth-trial acceptance ratio.
func (c *Cell) GetTrialRecord() float64 { return c.trial.ratio() }

// AddToTrialRecord records whether a growth trial was accepted.
func (c *Cell) AddToTrialRecord(accepted bool) { c.trial.add(accepted) }

// HasDrug reports whether the given drug is already in effect on this cell.
func (c *Cell) HasDrug(id DrugID) bool {
	_, ok := c.drugsApplied[id]
	return ok
}

// ApplyDrug marks the given drug as in effect on this cell.
func (c *Cell) ApplyDrug(id DrugID) {
	if c.drugsApplied == nil {
		c.drugsApplied = make(map[DrugID]struct{})
	}
	c.drugsApplied[id] = struct{}{}
}

// Area returns the cell's current footprint: the dumbbell lobe-union area in
// mitosis, or the disc area in interphase (the same formula, since
// interphase is the d=0 case).
func (c *Cell) Area() float64 {
	d := c.AxisLength - 2*c.Radius
	return lobeUnionArea(c.Radius, d)
}

// snapshot captures the mutable fields a Monte Carlo trial might need to
// revert, without touching the handle field or the drug/trial state
// a rejected trial never changes.
type cellSnapshot struct {
	coordinates   Point
	radius        float64
	axisLength    float64
	axisAngle     float64
	phase         Phase
	readyToDivide bool
}

func (c *Cell) snapshot() cellSnapshot {
	return cellSnapshot{
		coordinates:   c.Coordinates,
		radius:        c.Radius,
		axisLength:    c.AxisLength,
		axisAngle:     c.AxisAngle,
		phase:         c.Phase,
		readyToDivide: c.ReadyToDivide,
	}
}

func (c *Cell) restore(s cellSnapshot) {
	c.Coordinates = s.coordinates
	c.Radius = s.radius
	c.AxisLength = s.axisLength
	c.AxisAngle = s.axisAngle
	c.Phase = s.phase
	c.ReadyToDivide = s.readyToDivide
}
