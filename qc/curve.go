package qc

import (
	"math"

	"github.com/carbocation/smartchip/dataset"
	"github.com/carbocation/smartchip/qstat"
)

// Regression is a fitted standard curve, Ct = Intercept + Slope*log10(N).
type Regression struct {
	Intercept float64
	Slope     float64
}

// Efficiency is the per-cycle amplification factor implied by the slope;
// 2.0 means perfect doubling.
func (r Regression) Efficiency() float64 {
	return math.Pow(10, -1/r.Slope)
}

// Curve holds standard-curve points: one (log abundance, Ct) pair per Ct
// observation of a standard group.
type Curve struct {
	LogAbundance []float64
	Ct           []float64
}

// Len is the number of points, including those with a missing Ct.
func (c Curve) Len() int {
	return len(c.Ct)
}

// Append returns a new curve with o's points after c's.
func (c Curve) Append(o Curve) Curve {
	return Curve{
		LogAbundance: append(append(make([]float64, 0, c.Len()+o.Len()), c.LogAbundance...), o.LogAbundance...),
		Ct:           append(append(make([]float64, 0, c.Len()+o.Len()), c.Ct...), o.Ct...),
	}
}

// Empty is true when no point carries a Ct value.
func (c Curve) Empty() bool {
	for _, ct := range c.Ct {
		if !math.IsNaN(ct) {
			return false
		}
	}
	return true
}

// Fit is the standard curve's regression with its coefficient of
// determination and efficiency.
type Fit struct {
	Regression
	RSquared   float64
	Efficiency float64
}

// FitCurve regresses Ct on log abundance. A curve without any Ct value fits
// to the zero curve with zero R² and efficiency rather than NaN.
func FitCurve(c Curve) Fit {
	if c.Empty() {
		return Fit{}
	}

	return refit(c)
}

// refit fits c without special-casing an empty curve.
func refit(c Curve) Fit {
	out := Fit{}
	out.Intercept, out.Slope = qstat.LinearRegression(c.LogAbundance, c.Ct)
	out.RSquared = qstat.CoefficientOfDetermination(c.LogAbundance, c.Ct)
	out.Efficiency = out.Regression.Efficiency()

	return out
}

// ExtractCurve collects the points of the given standard groups. The
// dilution level is read from the last character of the rendered key
// ("...STD4" => 4) and is paired with every distinct Ct of that group.
func ExtractCurve(ix *dataset.Index, standards []dataset.GroupKey) Curve {
	out := Curve{}
	for _, k := range standards {
		level := StandardLevel(k)
		for _, ct := range ix.GroupCt.Values(k) {
			out.LogAbundance = append(out.LogAbundance, level)
			out.Ct = append(out.Ct, ct)
		}
	}

	return out
}

// StandardLevel is the log10 abundance encoded by the final character of a
// standard's key. Digits map to their value; any other character maps to
// its code minus the code of '0'.
func StandardLevel(k dataset.GroupKey) float64 {
	s := k.String()
	return float64(int(s[len(s)-1]) - '0')
}
