package qc

import (
	"math"

	"github.com/carbocation/smartchip/dataset"
)

// AssayResult is the QC outcome for one assay, including the standard curve
// that quantification must use.
type AssayResult struct {
	Assay string

	NTCMean  float64
	STD1Mean float64
	NTC      Verdict

	NEGMean float64
	NEG     Verdict

	Fit
	STD Verdict

	// Points is the number of standard-curve points behind Fit, and
	// Replaced is set when replacement standards were added to them.
	Points   int
	Replaced bool
}

// NTCDifference is the NTC-to-lowest-standard separation in cycles.
func (a AssayResult) NTCDifference() float64 {
	return a.NTCMean - a.STD1Mean
}

// GroupResult is the efficiency check of one group.
type GroupResult struct {
	Key        dataset.GroupKey
	Efficiency float64
	Verdict    Verdict
}

// Evaluator runs the per-assay QC state machine. Assays are independent of
// each other; the indexes are only read.
type Evaluator struct {
	markers    Markers
	thresholds Thresholds

	primary      *dataset.Index
	primaryRoles RoleIndex

	replacement      *dataset.Index
	replacementRoles RoleIndex
}

// NewEvaluator prepares the role lookups for primary and, if not nil, for
// the replacement standards.
func NewEvaluator(primary, replacement *dataset.Index, m Markers, th Thresholds) *Evaluator {
	return &Evaluator{
		markers:          m,
		thresholds:       th,
		primary:          primary,
		primaryRoles:     BuildRoleIndex(primary, m),
		replacement:      replacement,
		replacementRoles: BuildRoleIndex(replacement, m),
	}
}

// Assay evaluates one assay: NTC, NEG, standard curve fit and check, and
// the replacement refit when the curve fails.
func (e *Evaluator) Assay(assay string) AssayResult {
	out := AssayResult{Assay: assay}

	out.NTCMean = e.roleMean(assay, RoleNonTemplate)
	out.STD1Mean = e.roleMean(assay, RoleLowestStandard)
	out.NTC = CheckNTC(out.NTCMean, out.STD1Mean)

	if e.markers.Negative == NoNegativeControl {
		out.NEGMean = math.NaN()
		out.NEG = None
	} else {
		out.NEGMean = e.roleMean(assay, RoleNegative)
		out.NEG = CheckNEG(out.NEGMean)
	}

	curve := ExtractCurve(e.primary, e.primaryRoles.Standards(assay))
	out.Fit = FitCurve(curve)
	out.Points = curve.Len()
	out.STD = CheckStandardCurve(out.Efficiency, out.RSquared, e.thresholds)

	if out.STD == Fail && e.canReplace(assay) {
		curve = curve.Append(ExtractCurve(e.replacement, e.replacementRoles.Standards(assay)))

		// The combined curve is used as is; it is not checked against the
		// thresholds again.
		out.Fit = refit(curve)
		out.Points = curve.Len()
		out.STD = FailReplaced
		out.Replaced = true
	}

	return out
}

// Group evaluates the efficiency check of one group.
func (e *Evaluator) Group(k dataset.GroupKey) GroupResult {
	eff := e.primary.MeanEfficiency(k)
	return GroupResult{
		Key:        k,
		Efficiency: eff,
		Verdict:    CheckGroupEfficiency(eff, e.thresholds),
	}
}

func (e *Evaluator) roleMean(assay string, role Role) float64 {
	k, found := e.primaryRoles.Lookup(assay, role)
	if !found {
		return math.NaN()
	}
	return e.primary.MeanCt(k)
}

func (e *Evaluator) canReplace(assay string) bool {
	return e.replacement != nil && len(e.replacementRoles.Standards(assay)) > 0
}
