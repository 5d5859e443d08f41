// Package quantify back-calculates target copy numbers from Ct values using
// an assay's standard curve.
package quantify

import (
	"math"

	"github.com/carbocation/smartchip/qc"
	"github.com/carbocation/smartchip/qstat"
)

// Magnitudes maps an assay name to the coefficient its copy numbers are
// multiplied by. Assays that are absent use 1.
type Magnitudes map[string]float64

// Coefficient returns the coefficient for assay.
func (m Magnitudes) Coefficient(assay string) float64 {
	if c, exists := m[assay]; exists {
		return c
	}
	return 1
}

// CopyNumber inverts the standard curve for a single Ct:
// 10^((Ct - intercept) / slope). A zero slope gives Inf or NaN.
func CopyNumber(ct float64, curve qc.Regression) float64 {
	return math.Pow(10, (ct-curve.Intercept)/curve.Slope)
}

// CopyNumbers converts each Ct to a copy number and scales the series by
// coefficient. Missing values are dropped while scaling, so an all-missing
// series comes back as the single NaN sentinel.
func CopyNumbers(cts []float64, curve qc.Regression, coefficient float64) []float64 {
	out := make([]float64, 0, len(cts))
	for _, ct := range cts {
		out = append(out, CopyNumber(ct, curve))
	}

	return qstat.Magnify(out, coefficient, true)
}
