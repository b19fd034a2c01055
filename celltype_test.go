package simcell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellTypeBounds(t *testing.T) {
	ct := &CellType{Size: 2}
	assert.InDelta(t, math.Sqrt(2), ct.MinRadius(), 1e-9)
	assert.InDelta(t, math.Sqrt(4), ct.MaxRadius(), 1e-9)
	assert.InDelta(t, math.Sqrt(16), ct.MinMitoticAxisLength(), 1e-9)
	assert.InDelta(t, math.Sqrt(32), ct.MaxAxisLength(), 1e-9)
}

func TestSampleCycleLengthRejectsBelowMinimum(t *testing.T) {
	ct := &CellType{Name: "t", Size: 1, MinCycle: 24}
	ct.CycleLength = func(rng RandomSource) (float64, error) { return 1, nil }

	_, err := ct.sampleCycleLength(NewRandomSource(1))
	require.Error(t, err)
	var simErr *Error
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, ErrSampler, simErr.Kind)
}

func TestSampleCycleLengthDefaultClearsMinimum(t *testing.T) {
	ct := &CellType{Name: "t", Size: 1, MinCycle: 24}
	rng := NewRandomSource(7)
	for i := 0; i < 200; i++ {
		length, err := ct.sampleCycleLength(rng)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, length, ct.MinCycle)
	}
}

func TestDefaultGrowthRateSamplerWithinBounds(t *testing.T) {
	sampler := DefaultGrowthRateSampler(0.2, 0.8)
	rng := NewRandomSource(3)
	for i := 0; i < 200; i++ {
		v := sampler(rng)
		assert.GreaterOrEqual(t, v, 0.2)
		assert.Less(t, v, 0.8)
	}
}
