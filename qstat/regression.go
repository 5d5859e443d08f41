package qstat

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LinearRegression fits y = intercept + slope*x by ordinary least squares
// using the closed-form sums. Pairs with a NaN in either coordinate are
// dropped first. Zero variance in x yields NaN or Inf.
func LinearRegression(x, y []float64) (intercept, slope float64) {
	X, Y := RemoveMissingPairs(x, y)
	if len(X) == 0 {
		return math.NaN(), math.NaN()
	}

	n := float64(len(X))
	sX := floats.Sum(X)
	sY := floats.Sum(Y)
	sXX := floats.Dot(X, X)
	sXY := floats.Dot(X, Y)

	slope = ((n * sXY) - (sX * sY)) / ((n * sXX) - (sX * sX))
	intercept = (sY - (slope * sX)) / n

	return intercept, slope
}

// CoefficientOfDetermination returns SSR/SSE, where SSE is the sum of squared
// deviations of y about its mean and SSR is the sum of squared deviations of
// the fitted values about that same mean.
//
// This is the explained-over-total ratio rather than 1 - SSresid/SST. For an
// OLS fit with an intercept the two agree, but they diverge on degenerate
// input (e.g. constant y gives 0/0 = NaN here).
func CoefficientOfDetermination(x, y []float64) float64 {
	X, Y := RemoveMissingPairs(x, y)
	if len(X) == 0 {
		return math.NaN()
	}

	yBar := Mean(Y, false)
	intercept, slope := LinearRegression(X, Y)

	var sse, ssr float64
	for i := range Y {
		sse += (Y[i] - yBar) * (Y[i] - yBar)

		pred := X[i]*slope + intercept
		ssr += (pred - yBar) * (pred - yBar)
	}

	return ssr / sse
}
