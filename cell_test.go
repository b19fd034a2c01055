package simcell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRadiusDerivesAxisLength(t *testing.T) {
	c := &Cell{}
	c.SetRadius(1.5)
	assert.Equal(t, 1.5, c.Radius)
	assert.Equal(t, 3.0, c.AxisLength)
}

func TestSetAxisLengthRejectsBelowMitoticMinimum(t *testing.T) {
	ct := &CellType{Size: 1}
	c := &Cell{Type: ct}
	err := c.SetAxisLength(ct.MinMitoticAxisLength() - 0.5)
	require.Error(t, err)
	var simErr *Error
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, ErrInvariant, simErr.Kind)
}

func TestSetAxisLengthConservesArea(t *testing.T) {
	ct := &CellType{Size: 3}
	c := &Cell{Type: ct}
	target := 2 * math.Pi * ct.Size

	for _, length := range []float64{
		ct.MinMitoticAxisLength(),
		ct.MinMitoticAxisLength() + 0.01,
		(ct.MinMitoticAxisLength() + ct.MaxAxisLength()) / 2,
		ct.MaxAxisLength() - 0.01,
		ct.MaxAxisLength(),
	} {
		require.NoError(t, c.SetAxisLength(length))
		area := lobeUnionArea(c.Radius, c.AxisLength-2*c.Radius)
		assert.InDelta(t, target, area, 1e-6*target, "axisLength=%g radius=%g", length, c.Radius)
	}
}

func TestSetAxisLengthBoundaryRadii(t *testing.T) {
	ct := &CellType{Size: 1}
	c := &Cell{Type: ct}

	require.NoError(t, c.SetAxisLength(ct.MinMitoticAxisLength()))
	assert.InDelta(t, ct.MaxRadius(), c.Radius, 1e-6)

	require.NoError(t, c.SetAxisLength(ct.MaxAxisLength()))
	assert.InDelta(t, ct.MinRadius(), c.Radius, 1e-6)
}

func TestCentersSeparatedByAxisLengthMinusDiameter(t *testing.T) {
	ct := &CellType{Size: 1}
	c := &Cell{Type: ct, Coordinates: NewPoint(0, 0), AxisAngle: 0}
	require.NoError(t, c.SetAxisLength(ct.MinMitoticAxisLength()))

	a, b := c.Centers()
	assert.InDelta(t, c.AxisLength-2*c.Radius, Distance(a, b), 1e-9)
}

func TestDistanceNegativeWhenOverlapping(t *testing.T) {
	ct := &CellType{Size: 1}
	a := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(0, 0)}
	b := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(0.1, 0)}
	assert.Less(t, a.Distance(b), 0.0)

	c := &Cell{Type: ct, Radius: ct.MinRadius(), AxisLength: 2 * ct.MinRadius(), Coordinates: NewPoint(100, 0)}
	assert.Greater(t, a.Distance(c), 0.0)
}

func TestDivideResetsBothCellsToMinimumInterphase(t *testing.T) {
	ct := &CellType{Size: 1}
	rng := NewRandomSource(11)
	c := &Cell{Type: ct, Coordinates: NewPoint(5, 5), AxisAngle: 0.3}
	require.NoError(t, c.SetAxisLength(ct.MaxAxisLength()))
	c.ReadyToDivide = true

	daughter := &Cell{}
	c.Divide(daughter, rng)

	for _, cell := range []*Cell{c, daughter} {
		assert.Equal(t, Interphase, cell.Phase)
		assert.False(t, cell.ReadyToDivide)
		assert.InDelta(t, ct.MinRadius(), cell.Radius, 1e-9)
	}
	assert.NotEqual(t, c.Coordinates, daughter.Coordinates)
}

func TestGotoRandomCyclePointStaysWithinBounds(t *testing.T) {
	ct := &CellType{Size: 1, MinCycle: 24}
	rng := NewRandomSource(99)
	for i := 0; i < 500; i++ {
		c := &Cell{Type: ct, CycleLength: 48}
		c.GotoRandomCyclePoint(rng)
		if c.Phase == Interphase {
			assert.GreaterOrEqual(t, c.Radius, ct.MinRadius())
			assert.LessOrEqual(t, c.Radius, ct.MaxRadius())
		} else {
			assert.GreaterOrEqual(t, c.AxisLength, ct.MinMitoticAxisLength())
			assert.LessOrEqual(t, c.AxisLength, ct.MaxAxisLength())
		}
	}
}

func TestTrialRecordWarmupThenRatio(t *testing.T) {
	c := &Cell{}
	assert.Equal(t, 1.0, c.GetTrialRecord())
	for i := 0; i < 4; i++ {
		c.AddToTrialRecord(false)
	}
	assert.Equal(t, 1.0, c.GetTrialRecord(), "still warming up below 5 trials")

	c.AddToTrialRecord(true)
	assert.InDelta(t, 1.0/5.0, c.GetTrialRecord(), 1e-9)
}

func TestDrugAppliedTracking(t *testing.T) {
	c := &Cell{}
	id := DrugID{1}
	assert.False(t, c.HasDrug(id))
	c.ApplyDrug(id)
	assert.True(t, c.HasDrug(id))
}
