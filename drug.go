package simcell

import "github.com/google/uuid"

// DrugID identifies a Drug across a run; it doubles as the key cells record
// in their drugsApplied set.
type DrugID = uuid.UUID

// Drug is an immutable descriptor of a drug effect scheduled to switch on at
// a given simulation time. The effect itself (EffectByType) is an opaque,
// per-cell-type vector: C8 variants interpret it however their Hamiltonian
// needs to (spec treats the drug-effect catalogue as an external
// collaborator; this is simcell's concrete representation of the catalogue
// entry, not the catalogue's semantics).
type Drug struct {
	ID         DrugID
	Name       string
	TimeAdded  float64
	EffectByType map[CellTypeID]float64
}

// NewDrug builds a Drug with a freshly generated ID.
func NewDrug(name string, timeAdded float64, effectByType map[CellTypeID]float64) Drug {
	return Drug{ID: uuid.New(), Name: name, TimeAdded: timeAdded, EffectByType: effectByType}
}

// DrugScheduler applies a fixed list of Drugs to a population once their
// timeAdded has elapsed. It tracks which drugs have already fired so
// ApplyDrugs is cheap to call every time step (spec §5: drug application
// happens once per step, before any MC trial).
type DrugScheduler struct {
	drugs []Drug
	fired []bool
}

// NewDrugScheduler builds a scheduler over drugs, none of which have fired yet.
func NewDrugScheduler(drugs []Drug) *DrugScheduler {
	return &DrugScheduler{drugs: drugs, fired: make([]bool, len(drugs))}
}

// ApplyDrugs marks every drug whose timeAdded <= t as fired and, the first
// time each one fires, stamps every cell currently in index with it (spec
// scenario S5: a drug takes effect on the whole population in the step its
// time arrives, not gradually).
func (s *DrugScheduler) ApplyDrugs(t float64, index *SpatialIndex) {
	for i, d := range s.drugs {
		if s.fired[i] || t < d.TimeAdded {
			continue
		}
		s.fired[i] = true
		for _, c := range index.All() {
			c.ApplyDrug(d.ID)
		}
	}
}

// EffectOn returns the combined effect scale a cell's already-applied drugs
// exert on the given cell type: the product of each active drug's
// per-type effect, or 1 (no effect) if none apply. C3 stores the set of
// applied drugs and this helper interprets it. Nothing in the package calls
// it: the shipped DrasdoHohme variant and the engine do not read drug
// effects, so applied drugs do not change growth or acceptance.
func (s *DrugScheduler) EffectOn(c *Cell) float64 {
	effect := 1.0
	for _, d := range s.drugs {
		if !c.HasDrug(d.ID) {
			continue
		}
		if scale, ok := d.EffectByType[c.Type.ID]; ok {
			effect *= scale
		}
	}
	return effect
}
