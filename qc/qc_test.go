package qc

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbocation/smartchip/dataset"
)

var (
	testMarkers    = Markers{NonTemplate: "NTC", Negative: "NEG", Standard: "STD"}
	testThresholds = Thresholds{EfficiencyMin: 1.70, EfficiencyMax: 2.20, RSquaredMin: 0.85}
)

func buildIndex(t *testing.T, rows ...[]string) *dataset.Index {
	t.Helper()

	records := append([][]string{{"Assay", "Sample", "Ct", "Efficiency"}}, rows...)
	ix, err := dataset.Build(dataset.NewTable(records, true), dataset.Columns{
		Assay:      "Assay",
		Sample:     "Sample",
		Ct:         "Ct",
		Efficiency: "Efficiency",
	})
	require.NoError(t, err)

	return ix
}

// standardRows produces STD1..STD5 for assay on the line Ct = intercept +
// slope*level.
func standardRows(assay string, intercept, slope float64) [][]string {
	out := make([][]string, 0, 5)
	for level := 1; level <= 5; level++ {
		ct := intercept + slope*float64(level)
		out = append(out, []string{assay, fmt.Sprintf("STD%d", level), fmt.Sprintf("%.4f", ct), "1.95"})
	}
	return out
}

func TestCheckNEG(t *testing.T) {
	for _, v := range []struct {
		Mean     float64
		Expected Verdict
	}{
		{30, Fail},
		{34.99, Fail},
		{35, Pass},
		{36, Pass},
		{math.NaN(), Fail},
	} {
		assert.Equal(t, v.Expected, CheckNEG(v.Mean), "mean %v", v.Mean)
	}
}

func TestNegativeControlCheck(t *testing.T) {
	for _, v := range []struct {
		Ct       string
		Expected Verdict
	}{
		{"30", Fail},
		{"36", Pass},
	} {
		rows := append(standardRows("X", 40, -3.32), []string{"X", "NEG", v.Ct, ""})
		res := NewEvaluator(buildIndex(t, rows...), nil, testMarkers, testThresholds).Assay("X")

		assert.Equal(t, v.Expected, res.NEG, "Ct %s", v.Ct)
		assert.InDelta(t, mustParse(v.Ct), res.NEGMean, 1e-12)
	}
}

func TestNegativeControlDisabled(t *testing.T) {
	rows := append(standardRows("X", 40, -3.32), []string{"X", "NEG", "30", ""})
	m := testMarkers
	m.Negative = NoNegativeControl

	res := NewEvaluator(buildIndex(t, rows...), nil, m, testThresholds).Assay("X")
	assert.Equal(t, None, res.NEG)
	assert.True(t, math.IsNaN(res.NEGMean))
}

func TestNegativeControlMissing(t *testing.T) {
	res := NewEvaluator(buildIndex(t, standardRows("X", 40, -3.32)...), nil, testMarkers, testThresholds).Assay("X")
	assert.Equal(t, Fail, res.NEG)
	assert.True(t, math.IsNaN(res.NEGMean))
}

func TestNonTemplateControlCheck(t *testing.T) {
	// STD1 sits at 40 - 3.32 = 36.68
	for _, v := range []struct {
		Ct       string
		Expected Verdict
	}{
		{"40", Pass},
		{"39.7", Pass},
		{"39", Fail},
		{"", Fail},
	} {
		rows := append(standardRows("X", 40, -3.32), []string{"X", "NTC", v.Ct, ""})
		res := NewEvaluator(buildIndex(t, rows...), nil, testMarkers, testThresholds).Assay("X")

		assert.Equal(t, v.Expected, res.NTC, "Ct %q", v.Ct)
		assert.InDelta(t, 36.68, res.STD1Mean, 1e-9)
	}

	res := NewEvaluator(buildIndex(t, standardRows("X", 40, -3.32)...), nil, testMarkers, testThresholds).Assay("X")
	assert.Equal(t, Fail, res.NTC)
	assert.True(t, math.IsNaN(res.NTCDifference()))
}

func TestStandardCurvePass(t *testing.T) {
	res := NewEvaluator(buildIndex(t, standardRows("X", 40, -3.32)...), nil, testMarkers, testThresholds).Assay("X")

	assert.InDelta(t, 40, res.Intercept, 1e-3)
	assert.InDelta(t, -3.32, res.Slope, 1e-3)
	assert.InDelta(t, 1.0, res.RSquared, 1e-6)
	assert.InDelta(t, math.Pow(10, 1/3.32), res.Efficiency, 1e-3)
	assert.Equal(t, Pass, res.STD)
	assert.Equal(t, 5, res.Points)
	assert.False(t, res.Replaced)
}

func TestStandardCurveFailsOnEfficiency(t *testing.T) {
	// Slope -2 => efficiency 10^(1/2) ~ 3.16
	res := NewEvaluator(buildIndex(t, standardRows("X", 40, -2)...), nil, testMarkers, testThresholds).Assay("X")
	assert.Equal(t, Fail, res.STD)
}

func TestStandardCurveEmpty(t *testing.T) {
	ix := buildIndex(t,
		[]string{"X", "STD1", "", ""},
		[]string{"X", "STD2", "", ""},
		[]string{"X", "S1", "25", ""},
	)
	res := NewEvaluator(ix, nil, testMarkers, testThresholds).Assay("X")

	assert.Equal(t, Regression{}, res.Regression)
	assert.Equal(t, 0.0, res.RSquared)
	assert.Equal(t, 0.0, res.Efficiency)
	assert.Equal(t, Fail, res.STD)
}

func TestReplacementIsNeverPass(t *testing.T) {
	primary := buildIndex(t,
		[]string{"X", "STD1", "", ""},
		[]string{"X", "STD2", "", ""},
		[]string{"X", "S1", "25", ""},
	)
	replacement := buildIndex(t, standardRows("X", 40, -3.32)...)

	res := NewEvaluator(primary, replacement, testMarkers, testThresholds).Assay("X")

	// The replacement curve alone would pass.
	require.Equal(t, Pass, CheckStandardCurve(res.Efficiency, res.RSquared, testThresholds))

	assert.Equal(t, FailReplaced, res.STD)
	assert.True(t, res.Replaced)
	assert.InDelta(t, -3.32, res.Slope, 1e-3)
	assert.InDelta(t, 40, res.Intercept, 1e-3)
	assert.Equal(t, 7, res.Points)
}

func TestReplacementAppendsToPrimaryPoints(t *testing.T) {
	// Primary points lie on a line with a different intercept, so the
	// combined fit differs from the replacement fit.
	primary := buildIndex(t, standardRows("X", 30, -2)...)
	replacement := buildIndex(t, standardRows("X", 40, -3.32)...)

	res := NewEvaluator(primary, replacement, testMarkers, testThresholds).Assay("X")

	combined := ExtractCurve(primary, BuildRoleIndex(primary, testMarkers).Standards("X")).
		Append(ExtractCurve(replacement, BuildRoleIndex(replacement, testMarkers).Standards("X")))
	expected := FitCurve(combined)

	assert.Equal(t, FailReplaced, res.STD)
	assert.Equal(t, 10, res.Points)
	assert.InDelta(t, expected.Slope, res.Slope, 1e-12)
	assert.InDelta(t, expected.Intercept, res.Intercept, 1e-12)
	assert.InDelta(t, expected.RSquared, res.RSquared, 1e-12)
}

func TestReplacementSkippedWithoutStandards(t *testing.T) {
	primary := buildIndex(t, standardRows("X", 40, -2)...)
	replacement := buildIndex(t,
		append(standardRows("Y", 40, -3.32), []string{"X", "S1", "20", ""})...,
	)

	res := NewEvaluator(primary, replacement, testMarkers, testThresholds).Assay("X")
	assert.Equal(t, Fail, res.STD)
	assert.False(t, res.Replaced)
	assert.Equal(t, 5, res.Points)
}

func TestReplacementNotUsedWhenPassing(t *testing.T) {
	primary := buildIndex(t, standardRows("X", 40, -3.32)...)
	replacement := buildIndex(t, standardRows("X", 30, -3.0)...)

	res := NewEvaluator(primary, replacement, testMarkers, testThresholds).Assay("X")
	assert.Equal(t, Pass, res.STD)
	assert.InDelta(t, 40, res.Intercept, 1e-3)
}

func TestGroupEfficiency(t *testing.T) {
	ix := buildIndex(t,
		[]string{"X", "S1", "20", "1.69"},
		[]string{"X", "S2", "20", "1.70"},
		[]string{"X", "S3", "20", "2.90"},
		[]string{"X", "S4", "20", ""},
	)
	e := NewEvaluator(ix, nil, testMarkers, testThresholds)

	assert.Equal(t, Fail, e.Group(dataset.NewGroupKey("X", "S1")).Verdict)
	assert.Equal(t, Pass, e.Group(dataset.NewGroupKey("X", "S2")).Verdict)
	// No upper bound for groups.
	assert.Equal(t, Pass, e.Group(dataset.NewGroupKey("X", "S3")).Verdict)
	assert.Equal(t, Fail, e.Group(dataset.NewGroupKey("X", "S4")).Verdict)
}

func TestRoleIndexFirstMatchWins(t *testing.T) {
	ix := buildIndex(t,
		[]string{"X", "NTC_b", "38", ""},
		[]string{"X", "NTC_a", "30", ""},
		[]string{"X", "STD10", "20", ""},
		[]string{"X", "STD1", "21", ""},
	)
	roles := BuildRoleIndex(ix, testMarkers)

	k, found := roles.Lookup("X", RoleNonTemplate)
	require.True(t, found)
	assert.Equal(t, dataset.NewGroupKey("X", "NTC_b"), k)

	// "STD10" contains "STD1" and was seen first.
	k, found = roles.Lookup("X", RoleLowestStandard)
	require.True(t, found)
	assert.Equal(t, dataset.NewGroupKey("X", "STD10"), k)

	_, found = roles.Lookup("X", RoleNegative)
	assert.False(t, found)

	assert.Len(t, roles.Standards("X"), 2)
	assert.Empty(t, BuildRoleIndex(nil, testMarkers).Standards("X"))
}

func TestStandardLevel(t *testing.T) {
	assert.Equal(t, 4.0, StandardLevel(dataset.NewGroupKey("16S", "STD4")))
	assert.Equal(t, 0.0, StandardLevel(dataset.NewGroupKey("16S", "STD10")))
	assert.Equal(t, float64('A'-'0'), StandardLevel(dataset.NewGroupKey("16S", "STDA")))
}

func TestCurveAppendDoesNotAlias(t *testing.T) {
	a := Curve{LogAbundance: make([]float64, 1, 10), Ct: make([]float64, 1, 10)}
	b := Curve{LogAbundance: []float64{2}, Ct: []float64{30}}

	c := a.Append(b)
	c.Ct[0] = 99

	assert.Equal(t, 0.0, a.Ct[0])
	assert.Equal(t, 2, c.Len())
}

func mustParse(s string) float64 {
	v, _ := dataset.ParseValue(s)
	return v
}
