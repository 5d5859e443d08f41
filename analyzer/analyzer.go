// Package analyzer runs one SmartChip dataset through indexing, QC and
// quantification and returns the per-assay and per-group summaries that the
// reports are written from.
package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/carbocation/smartchip/dataset"
	"github.com/carbocation/smartchip/qc"
	"github.com/carbocation/smartchip/qstat"
	"github.com/carbocation/smartchip/quantify"
)

// Inputs are the tables of one analysis. Replacement and Magnitudes are
// optional.
type Inputs struct {
	Primary     *dataset.Table
	Replacement *dataset.Table
	Magnitudes  quantify.Magnitudes
}

// AssaySummary is one line of the assay QC report.
type AssaySummary struct {
	qc.AssayResult

	// PercentPositive is the share of the assay's distinct Ct values at or
	// below the positive threshold, as a whole-number percentage.
	PercentPositive float64
}

// GroupSummary is one line of the per-sample reports.
type GroupSummary struct {
	Key    dataset.GroupKey
	Assay  string
	Sample string

	CtMean float64
	CtSD   float64

	CopyNumbers    []float64
	CopyNumberMean float64
	CopyNumberSD   float64

	Efficiency float64
	QC         qc.Verdict
}

// Result holds the summaries in report order, plus data-quality warnings
// found along the way. Warnings never stop an analysis.
type Result struct {
	Assays []AssaySummary
	Groups []GroupSummary

	Warnings []string

	assays map[string]int
}

// Assay returns the summary for the named assay.
func (r *Result) Assay(name string) (AssaySummary, bool) {
	i, exists := r.assays[name]
	if !exists {
		return AssaySummary{}, false
	}
	return r.Assays[i], true
}

// Analyze runs the full pipeline. Errors are only returned for missing
// columns; numeric problems show up as NaN values and FAIL verdicts.
func Analyze(cfg Config, in Inputs) (*Result, error) {
	if in.Primary == nil {
		return nil, fmt.Errorf("No primary table was provided")
	}

	primary, err := dataset.Build(in.Primary, cfg.Columns())
	if err != nil {
		return nil, err
	}

	var replacement *dataset.Index
	if in.Replacement != nil {
		if replacement, err = dataset.Build(in.Replacement, cfg.ReplacementColumns()); err != nil {
			return nil, fmt.Errorf("Replacement standards: %w", err)
		}
	}

	out := &Result{assays: make(map[string]int)}
	out.Warnings = append(out.Warnings, warnings("input", in.Primary, primary)...)
	if replacement != nil {
		out.Warnings = append(out.Warnings, warnings("replacement standards", in.Replacement, replacement)...)
	}

	eval := qc.NewEvaluator(primary, replacement, cfg.Markers(), cfg.Thresholds())

	out.Assays = summarizeAssays(cfg, primary, eval)
	for i, a := range out.Assays {
		out.assays[a.Assay] = i
	}

	out.Groups = summarizeGroups(primary, eval, out, in.Magnitudes)

	return out, nil
}

func summarizeAssays(cfg Config, ix *dataset.Index, eval *qc.Evaluator) []AssaySummary {
	positive := dataset.PercentBelowThreshold(ix.AssayCt, cfg.PositiveCtMax)

	out := make([]AssaySummary, 0, len(ix.Assays))
	for _, assay := range ix.Assays {
		out = append(out, AssaySummary{
			AssayResult:     eval.Assay(assay),
			PercentPositive: roundPercent(positive[dataset.NewGroupKey(assay)]),
		})
	}

	return out
}

func summarizeGroups(ix *dataset.Index, eval *qc.Evaluator, res *Result, mags quantify.Magnitudes) []GroupSummary {
	out := make([]GroupSummary, 0, len(ix.Groups))
	for _, k := range ix.Groups {
		assay := ix.AssayOf(k)
		group := eval.Group(k)

		// Every group's assay was evaluated, but a group whose assay cell
		// is unusual still gets the degenerate curve rather than a panic.
		var curve qc.Regression
		if a, found := res.Assay(assay); found {
			curve = a.Regression
		}

		copies := quantify.CopyNumbers(ix.GroupCt.Values(k), curve, mags.Coefficient(assay))

		out = append(out, GroupSummary{
			Key:            k,
			Assay:          assay,
			Sample:         ix.SampleOf(k),
			CtMean:         ix.MeanCt(k),
			CtSD:           ix.CtSD[k],
			CopyNumbers:    copies,
			CopyNumberMean: qstat.Mean(copies, false),
			CopyNumberSD:   qstat.StandardDeviation(copies, false),
			Efficiency:     group.Efficiency,
			QC:             group.Verdict,
		})
	}

	return out
}

func roundPercent(fraction float64) float64 {
	r, err := stats.Round(fraction*100, 0)
	if err != nil {
		return math.NaN()
	}
	return r
}

func warnings(label string, t *dataset.Table, ix *dataset.Index) []string {
	var out []string

	for _, col := range t.DuplicateColumns {
		out = append(out, fmt.Sprintf("%s: column %q appears more than once in the header; the last one is used", label, col))
	}

	if n := ix.GroupCt.Unparsed; n > 0 {
		out = append(out, fmt.Sprintf("%s: %d Ct values could not be parsed and were treated as missing", label, n))
	}
	if n := ix.GroupEfficiency.Unparsed; n > 0 {
		out = append(out, fmt.Sprintf("%s: %d efficiency values could not be parsed and were treated as missing", label, n))
	}

	collisions := ix.GroupCt.Collisions()
	labels := make([]string, 0, len(collisions))
	for l := range collisions {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		out = append(out, fmt.Sprintf("%s: %d different groups are all labelled %q", label, len(collisions[l]), l))
	}

	return out
}
