package simcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDrasdoHohmeVariant(t *testing.T) *drasdoHohme {
	t.Helper()
	v, err := newDrasdoHohme(&Config{Epsilon: 2, Delta: 0.5, MaxDeformation: 0.3, NG: 1.0})
	require.NoError(t, err)
	return v.(*drasdoHohme)
}

func TestHamiltonianZeroWhenIsolated(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	ct := &CellType{Size: 1}
	idx := NewSpatialIndex(1.0)
	c := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(0, 0)}
	idx.Insert(c)

	e := v.CalculateHamiltonian(c, idx)
	assert.False(t, e.Infinite)
	assert.Equal(t, 0.0, e.Value)
	assert.Equal(t, 0, v.NumNeighbors(c, idx))
}

func TestHamiltonianPositiveWhenCompressed(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	ct := &CellType{Size: 1}
	idx := NewSpatialIndex(1.0)
	a := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(0, 0)}
	b := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(2*ct.MinRadius()*0.8, 0)}
	idx.Insert(a)
	idx.Insert(b)

	e := v.CalculateHamiltonian(a, idx)
	assert.Greater(t, e.Value, 0.0)
	assert.Equal(t, 1, v.NumNeighbors(a, idx))
}

func TestAcceptTrialAlwaysAcceptsLowerEnergy(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	rng := NewRandomSource(1)
	assert.True(t, v.AcceptTrial(FiniteEnergy(5), FiniteEnergy(2), 3, 3, rng))
}

func TestAcceptTrialNeverAcceptsInfinitePost(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	rng := NewRandomSource(1)
	assert.False(t, v.AcceptTrial(FiniteEnergy(0), InfiniteEnergy(), 0, 0, rng))
}

func TestAcceptTrialProbabilisticForHigherEnergy(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	rng := NewRandomSource(2)
	accepted := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		if v.AcceptTrial(FiniteEnergy(0), FiniteEnergy(1), 0, 0, rng) {
			accepted++
		}
	}
	ratio := float64(accepted) / trials
	assert.InDelta(t, 0.368, ratio, 0.05)
}

func TestAttemptTrialRestrictedByPhase(t *testing.T) {
	v := newDrasdoHohmeVariant(t)
	rng := NewRandomSource(5)
	ct := &CellType{Size: 1}

	interphase := &Cell{Type: ct, Phase: Interphase}
	for i := 0; i < 200; i++ {
		kind := v.AttemptTrial(interphase, rng)
		assert.NotEqual(t, TrialDeformation, kind)
	}

	mitotic := &Cell{Type: ct, Phase: Mitosis}
	for i := 0; i < 200; i++ {
		kind := v.AttemptTrial(mitotic, rng)
		assert.NotEqual(t, TrialGrowth, kind)
	}
}

func TestMaxGrowthScalesByInheritGrowth(t *testing.T) {
	v, err := newDrasdoHohme(&Config{NG: 2, InheritGrowth: true})
	require.NoError(t, err)
	dh := v.(*drasdoHohme)

	c := &Cell{GrowthRate: 0.1}
	for i := 0; i < 4; i++ {
		c.AddToTrialRecord(false)
	}
	assert.InDelta(t, 0.2, dh.MaxGrowth(c), 1e-9, "still warming up, ratio is 1")

	for i := 0; i < 10; i++ {
		c.AddToTrialRecord(false)
	}
	assert.Less(t, dh.MaxGrowth(c), 0.2, "throttled after repeated rejection")
}

func TestVariantRegistryUnknownName(t *testing.T) {
	_, err := NewVariant("NotARealModel", &Config{})
	require.Error(t, err)
	var simErr *Error
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, ErrConfiguration, simErr.Kind)
}

func TestVariantRegistryDrasdoHohme(t *testing.T) {
	v, err := NewVariant("DrasdoHohme", &Config{Epsilon: 1, Delta: 0.5, NG: 1})
	require.NoError(t, err)
	assert.IsType(t, &drasdoHohme{}, v)
}
