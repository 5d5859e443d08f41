// Package qc decides whether each assay's controls and standard curve are
// acceptable, fits the standard curves used for quantification, and flags
// groups whose reported amplification efficiency is too low.
package qc

// Verdict is the outcome of one quality check.
type Verdict string

const (
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"

	// FailReplaced marks an assay whose own standard curve failed and was
	// refit with replacement standards. It is never upgraded to Pass.
	FailReplaced Verdict = "FAIL_REPLACED"

	// None means the check was not configured (as opposed to Fail).
	None Verdict = "NONE"
)

// Fixed cycle thresholds for the control checks.
const (
	// The non-template control must come up at least this many cycles after
	// the lowest standard.
	MinNTCSeparation = 3.0

	// A negative control amplifying before this cycle indicates
	// contamination.
	MinNegativeControlCt = 35.0
)

// NoNegativeControl disables the negative control check when given as the
// negative control marker.
const NoNegativeControl = "none"

// Markers are the substrings that identify control and standard groups
// within an assay.
type Markers struct {
	NonTemplate string
	Negative    string
	Standard    string
}

// Thresholds bound the acceptable standard curve.
type Thresholds struct {
	EfficiencyMin float64
	EfficiencyMax float64
	RSquaredMin   float64
}

// CheckNTC passes when the non-template control's mean Ct is at least
// MinNTCSeparation cycles above the lowest standard's. Missing values fail.
func CheckNTC(ntcMean, std1Mean float64) Verdict {
	if ntcMean-std1Mean >= MinNTCSeparation {
		return Pass
	}
	return Fail
}

// CheckNEG fails when the negative control's mean Ct is below
// MinNegativeControlCt, or missing.
func CheckNEG(negMean float64) Verdict {
	if negMean >= MinNegativeControlCt {
		return Pass
	}
	return Fail
}

// CheckStandardCurve passes when the efficiency lies within the configured
// range and the fit is good enough.
func CheckStandardCurve(efficiency, rSquared float64, th Thresholds) Verdict {
	if efficiency >= th.EfficiencyMin &&
		efficiency <= th.EfficiencyMax &&
		rSquared >= th.RSquaredMin {
		return Pass
	}
	return Fail
}

// CheckGroupEfficiency only applies the lower efficiency bound. Groups are
// held to a looser standard than curves: no upper bound and no R².
func CheckGroupEfficiency(meanEfficiency float64, th Thresholds) Verdict {
	if meanEfficiency >= th.EfficiencyMin {
		return Pass
	}
	return Fail
}
