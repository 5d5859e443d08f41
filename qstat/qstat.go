// Package qstat holds the NaN-aware summary statistics and the standard
// curve regression used for qPCR quality control. Degenerate input never
// panics: the functions return NaN (or Inf, for a vertical regression line)
// and let the caller's threshold checks fail.
package qstat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RemoveMissing returns a copy of values without NaN entries. If nothing is
// left, the result is a single NaN sentinel, which callers must treat as "no
// data" and not as one observation.
func RemoveMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	if len(out) == 0 {
		return []float64{math.NaN()}
	}

	return out
}

// IsMissing reports whether values carries no observations, i.e. it is empty
// or is the singleton NaN sentinel produced by RemoveMissing.
func IsMissing(values []float64) bool {
	return len(values) == 0 || (len(values) == 1 && math.IsNaN(values[0]))
}

// Mean is the arithmetic mean. With dropMissing, NaN entries are ignored; if
// nothing remains the mean is NaN.
func Mean(values []float64, dropMissing bool) float64 {
	if dropMissing {
		values = RemoveMissing(values)
	}
	if len(values) == 0 {
		return math.NaN()
	}

	return stat.Mean(values, nil)
}

// Variance is the sample variance, sum((x-mean)^2)/(n-1). Fewer than two
// observations give NaN.
func Variance(values []float64, dropMissing bool) float64 {
	if dropMissing {
		values = RemoveMissing(values)
	}
	if len(values) < 2 {
		return math.NaN()
	}

	return stat.Variance(values, nil)
}

// StandardDeviation is sqrt(Variance).
func StandardDeviation(values []float64, dropMissing bool) float64 {
	return math.Sqrt(Variance(values, dropMissing))
}

// SumSquaredDeviations is sum((x-mean)^2) without any divisor. Its square
// root is not a standard deviation.
func SumSquaredDeviations(values []float64, dropMissing bool) float64 {
	if dropMissing {
		values = RemoveMissing(values)
	}
	m := Mean(values, false)
	if math.IsNaN(m) {
		return math.NaN()
	}

	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}

	return ss
}

// Magnify multiplies every value by scalar. With dropMissing, NaN entries are
// removed first (so an all-missing series becomes the NaN sentinel).
func Magnify(values []float64, scalar float64, dropMissing bool) []float64 {
	var out []float64
	if dropMissing {
		out = RemoveMissing(values)
	} else {
		out = append(make([]float64, 0, len(values)), values...)
	}

	floats.Scale(scalar, out)

	return out
}

// RemoveMissingPairs drops index i from both slices whenever x[i] or y[i] is
// NaN. The slices must be the same length; any excess in the longer one is
// ignored.
func RemoveMissingPairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	X := make([]float64, 0, n)
	Y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		X = append(X, x[i])
		Y = append(Y, y[i])
	}

	return X, Y
}
