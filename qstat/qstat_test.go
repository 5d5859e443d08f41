package qstat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanAndStandardDeviation(t *testing.T) {
	for _, v := range []struct {
		Values []float64
		Mean   float64
		SD     float64
	}{
		{[]float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2.138089935299395},
		{[]float64{10, 12}, 11, math.Sqrt2},
		{[]float64{1.5, 2.5, 3.5}, 2.5, 1},
	} {
		assert.InDelta(t, v.Mean, Mean(v.Values, true), 1e-12, "%v", v.Values)
		assert.InDelta(t, v.SD, StandardDeviation(v.Values, true), 1e-12, "%v", v.Values)
	}
}

func TestMeanIgnoresMissing(t *testing.T) {
	assert.InDelta(t, 11.0, Mean([]float64{10, math.NaN(), 12}, true), 1e-12)
	assert.True(t, math.IsNaN(Mean([]float64{10, math.NaN(), 12}, false)))
	assert.True(t, math.IsNaN(Mean(nil, true)))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN(), math.NaN()}, true)))
}

func TestVarianceDegenerate(t *testing.T) {
	assert.True(t, math.IsNaN(Variance([]float64{3}, true)))
	assert.True(t, math.IsNaN(Variance(nil, true)))
	assert.True(t, math.IsNaN(StandardDeviation([]float64{math.NaN()}, true)))
	assert.InDelta(t, 0.0, Variance([]float64{3, 3, 3}, true), 1e-12)
}

func TestSumSquaredDeviations(t *testing.T) {
	assert.InDelta(t, 2.0, SumSquaredDeviations([]float64{10, 12}, true), 1e-12)
	assert.True(t, math.IsNaN(SumSquaredDeviations(nil, true)))
}

func TestRemoveMissing(t *testing.T) {
	in := []float64{1, math.NaN(), 2, math.NaN()}
	once := RemoveMissing(in)
	require.Equal(t, []float64{1, 2}, once)
	require.Equal(t, once, RemoveMissing(once))

	allMissing := RemoveMissing([]float64{math.NaN(), math.NaN()})
	require.Len(t, allMissing, 1)
	assert.True(t, math.IsNaN(allMissing[0]))
	assert.True(t, IsMissing(allMissing))

	twice := RemoveMissing(allMissing)
	require.Len(t, twice, 1)
	assert.True(t, math.IsNaN(twice[0]))

	// The input is not modified
	assert.True(t, math.IsNaN(in[1]))
}

func TestMagnify(t *testing.T) {
	assert.Equal(t, []float64{2, 4}, Magnify([]float64{1, math.NaN(), 2}, 2, true))

	kept := Magnify([]float64{1, math.NaN()}, 3, false)
	require.Len(t, kept, 2)
	assert.Equal(t, 3.0, kept[0])
	assert.True(t, math.IsNaN(kept[1]))

	none := Magnify([]float64{math.NaN()}, 3, true)
	assert.True(t, IsMissing(none))
}

func TestRemoveMissingPairs(t *testing.T) {
	x := []float64{1, math.NaN(), 3, 4}
	y := []float64{10, 20, math.NaN(), 40}
	X, Y := RemoveMissingPairs(x, y)
	assert.Equal(t, []float64{1, 4}, X)
	assert.Equal(t, []float64{10, 40}, Y)
}
