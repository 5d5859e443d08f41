package qstat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearRegressionRecoversLine(t *testing.T) {
	for _, v := range []struct {
		A, B float64
		X    []float64
	}{
		{40, -3.32, []float64{1, 2, 3, 4, 5}},
		{0, 1, []float64{-1, 0, 1}},
		{2.5, 0.25, []float64{0, 10, 20, 30}},
	} {
		y := make([]float64, len(v.X))
		for i, x := range v.X {
			y[i] = v.A + v.B*x
		}

		a, b := LinearRegression(v.X, y)
		if math.Abs(a-v.A) > 1e-9 || math.Abs(b-v.B) > 1e-9 {
			t.Fatalf("\nInput: %+v\nGot intercept %.12f slope %.12f", v, a, b)
		}

		assert.InDelta(t, 1.0, CoefficientOfDetermination(v.X, y), 1e-9)
	}
}

func TestLinearRegressionDropsMissingPairs(t *testing.T) {
	x := []float64{1, 2, math.NaN(), 3, 4}
	y := []float64{3, 5, 100, 7, math.NaN()}

	a, b := LinearRegression(x, y)
	assert.InDelta(t, 1.0, a, 1e-12)
	assert.InDelta(t, 2.0, b, 1e-12)
}

func TestLinearRegressionDegenerate(t *testing.T) {
	// Vertical line: no variance in x.
	a, b := LinearRegression([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.False(t, isFinite(a) && isFinite(b))

	a, b = LinearRegression(nil, nil)
	assert.True(t, math.IsNaN(a))
	assert.True(t, math.IsNaN(b))

	assert.True(t, math.IsNaN(CoefficientOfDetermination(nil, nil)))
}

func TestCoefficientOfDeterminationNoisy(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1}

	// SSR/SSE equals the textbook value for an OLS fit with an intercept.
	a, b := LinearRegression(x, y)
	mean := Mean(y, false)
	var ssRes, ssTot float64
	for i := range x {
		r := y[i] - (a + b*x[i])
		ssRes += r * r
		ssTot += (y[i] - mean) * (y[i] - mean)
	}

	assert.InDelta(t, 1-ssRes/ssTot, CoefficientOfDetermination(x, y), 1e-9)
}

func TestCoefficientOfDeterminationConstantY(t *testing.T) {
	assert.True(t, math.IsNaN(CoefficientOfDetermination([]float64{1, 2, 3}, []float64{5, 5, 5})))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
