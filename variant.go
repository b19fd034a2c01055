package simcell

// TrialKind is the kind of Monte Carlo trial a variant proposed for a cell.
type TrialKind int

const (
	TrialGrowth TrialKind = iota
	TrialTranslation
	TrialDeformation
	TrialRotation
)

func (k TrialKind) String() string {
	switch k {
	case TrialGrowth:
		return "growth"
	case TrialTranslation:
		return "translation"
	case TrialDeformation:
		return "deformation"
	case TrialRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Energy is a Hamiltonian value. Infinite marks configurations a variant
// wants to forbid outright, which forces rejection of any non-growth trial
// regardless of the Metropolis draw.
type Energy struct {
	Value    float64
	Infinite bool
}

// FiniteEnergy wraps a finite Hamiltonian value.
func FiniteEnergy(v float64) Energy { return Energy{Value: v} }

// InfiniteEnergy is the forbidden-configuration sentinel.
func InfiniteEnergy() Energy { return Energy{Infinite: true} }

// Variant is the pluggable Hamiltonian/acceptance contract C5 consumes
// without knowing which concrete biological model it is driving (spec §4.4).
type Variant interface {
	// AttemptTrial chooses which kind of trial to propose for c.
	AttemptTrial(c *Cell, rng RandomSource) TrialKind
	// AcceptTrial applies the Metropolis criterion (or whatever criterion the
	// variant defines) to a non-growth trial's energy and neighbor-count delta.
	AcceptTrial(preEnergy, postEnergy Energy, preNeighbors, postNeighbors int, rng RandomSource) bool
	// CalculateHamiltonian computes c's contribution to the system energy
	// given its current neighborhood in index.
	CalculateHamiltonian(c *Cell, index *SpatialIndex) Energy
	// NumNeighbors counts cells within interaction range of c.
	NumNeighbors(c *Cell, index *SpatialIndex) int
	// MaxGrowth and MaxDeformation bound the per-trial growth/deformation
	// draw for c, letting a variant throttle by trial history (nG).
	MaxGrowth(c *Cell) float64
	MaxDeformation(c *Cell) float64
}

// VariantFactory builds a Variant from a validated Config. Variants close
// over the pieces of Config they need (eps, delta, growth bounds) at
// construction time rather than re-reading Config on every call.
type VariantFactory func(cfg *Config) (Variant, error)

var variantRegistry = map[string]VariantFactory{}

// RegisterVariant adds name to the dispatch table (spec C8: "select a
// concrete variant by name"). Intended to be called from package init funcs,
// so a host can add its own variants alongside the shipped ones.
func RegisterVariant(name string, factory VariantFactory) {
	variantRegistry[name] = factory
}

// NewVariant builds the named variant, or a configuration error if name is
// not registered.
func NewVariant(name string, cfg *Config) (Variant, error) {
	factory, ok := variantRegistry[name]
	if !ok {
		return nil, configErrorf("variant", "unknown model variant %q", name)
	}
	return factory(cfg)
}

func init() {
	RegisterVariant("DrasdoHohme", newDrasdoHohme)
}
