// Package report writes the CSV reports of one analysis.
package report

import (
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/carbocation/smartchip/analyzer"
)

const (
	AssaySuffix  = "_assay_QC_report.csv"
	SampleSuffix = "_sample_QC_report.csv"
	LIMSSuffix   = "_LIMS_report.csv"
	FullSuffix   = "_sample_qpcr_output_with_assay_info_qc.csv"
)

// Options selects the optional reports.
type Options struct {
	// SampleReport enables the per-sample QC report.
	SampleReport bool
}

// Number is a numeric cell. NaN is null and is written as an empty cell;
// other values are written in plain decimal notation.
type Number struct {
	null.Float
}

func NumberFrom(v float64) Number {
	return Number{null.NewFloat(v, !math.IsNaN(v))}
}

func (n Number) MarshalCSV() (string, error) {
	b, err := n.MarshalText()
	return string(b), err
}

type AssayRow struct {
	Assay           string `csv:"Assay"`
	Efficiency      Number `csv:"STD_Efficiency"`
	Slope           Number `csv:"Slope"`
	Intercept       Number `csv:"Intercept"`
	RSquared        Number `csv:"Rsqr"`
	StandardCurveQC string `csv:"QC_StdCurve"`
	NEGCt           Number `csv:"NEG_Ct"`
	NEGQC           string `csv:"QC_NEG"`
	NTCDifference   Number `csv:"NTC_diff"`
	NTCQC           string `csv:"QC_NTC"`
	PercentPositive Number `csv:"Percent_Positive_Samples"`
}

type SampleRow struct {
	Assay          string `csv:"Assay"`
	Sample         string `csv:"Sample"`
	MeanCopyNumber Number `csv:"Mean_Copy_N"`
	SDCopyNumber   Number `csv:"Sd_Copy_N"`
	MeanEfficiency Number `csv:"Mean_Efficiency"`
	QC             string `csv:"QCSample"`
}

// LIMSRow matches the LIMS import layout. The columns between the row
// number and Measure are filled in by the LIMS.
type LIMSRow struct {
	Row             int    `csv:"Row"` // written under an empty header
	Number          string `csv:"Number"`
	Assay           string `csv:"Assay"`
	Cycle           string `csv:"Cycle"`
	FunctionalGroup string `csv:"FunctionalGroup"`
	GeneClass       string `csv:"GeneClass"`
	Measure         string `csv:"Measure"`
	JIC             string `csv:"JIC"`
	Sample          string `csv:"Sample"`
	MeanCopyNumber  Number `csv:"meanCopyN"`
	SDCopyNumber    Number `csv:"stderr_CopyN"`
	MeanEfficiency  Number `csv:"Mean_Efficiency"`
	QC              string `csv:"QCSample"`
}

type FullRow struct {
	Assay           string `csv:"Assay"`
	Sample          string `csv:"Sample"`
	MeanCopyNumber  Number `csv:"Mean_Copy_N"`
	SDCopyNumber    Number `csv:"stderr"`
	MeanEfficiency  Number `csv:"meanEffi"`
	QC              string `csv:"QCSample"`
	Efficiency      Number `csv:"STD_Efficiency"`
	RSquared        Number `csv:"Rsqr"`
	StandardCurveQC string `csv:"QC_StdCurve"`
	NEGCt           Number `csv:"NEG_Ct"`
	NEGQC           string `csv:"QC_NEG"`
	NTCDifference   Number `csv:"NTC_diff"`
	NTCQC           string `csv:"QC_NTC"`
}

func AssayRows(res *analyzer.Result) []AssayRow {
	out := make([]AssayRow, 0, len(res.Assays))
	for _, a := range res.Assays {
		out = append(out, AssayRow{
			Assay:           a.Assay,
			Efficiency:      NumberFrom(a.Efficiency),
			Slope:           NumberFrom(a.Slope),
			Intercept:       NumberFrom(a.Intercept),
			RSquared:        NumberFrom(a.RSquared),
			StandardCurveQC: string(a.STD),
			NEGCt:           NumberFrom(a.NEGMean),
			NEGQC:           string(a.NEG),
			NTCDifference:   NumberFrom(a.NTCDifference()),
			NTCQC:           string(a.NTC),
			PercentPositive: NumberFrom(a.PercentPositive),
		})
	}

	return out
}

func SampleRows(res *analyzer.Result) []SampleRow {
	out := make([]SampleRow, 0, len(res.Groups))
	for _, g := range res.Groups {
		out = append(out, SampleRow{
			Assay:          g.Assay,
			Sample:         g.Sample,
			MeanCopyNumber: NumberFrom(g.CopyNumberMean),
			SDCopyNumber:   NumberFrom(g.CopyNumberSD),
			MeanEfficiency: NumberFrom(g.Efficiency),
			QC:             string(g.QC),
		})
	}

	return out
}

func LIMSRows(res *analyzer.Result) []LIMSRow {
	out := make([]LIMSRow, 0, len(res.Groups))
	for i, g := range res.Groups {
		out = append(out, LIMSRow{
			Row:            i + 1,
			Measure:        g.Assay,
			Sample:         g.Sample,
			MeanCopyNumber: NumberFrom(g.CopyNumberMean),
			SDCopyNumber:   NumberFrom(g.CopyNumberSD),
			MeanEfficiency: NumberFrom(g.Efficiency),
			QC:             string(g.QC),
		})
	}

	return out
}

func FullRows(res *analyzer.Result) []FullRow {
	out := make([]FullRow, 0, len(res.Groups))
	for _, g := range res.Groups {
		row := FullRow{
			Assay:          g.Assay,
			Sample:         g.Sample,
			MeanCopyNumber: NumberFrom(g.CopyNumberMean),
			SDCopyNumber:   NumberFrom(g.CopyNumberSD),
			MeanEfficiency: NumberFrom(g.Efficiency),
			QC:             string(g.QC),
		}

		if a, found := res.Assay(g.Assay); found {
			row.Efficiency = NumberFrom(a.Efficiency)
			row.RSquared = NumberFrom(a.RSquared)
			row.StandardCurveQC = string(a.STD)
			row.NEGCt = NumberFrom(a.NEGMean)
			row.NEGQC = string(a.NEG)
			row.NTCDifference = NumberFrom(a.NTCDifference())
			row.NTCQC = string(a.NTC)
		}

		out = append(out, row)
	}

	return out
}

// Write writes every enabled report next to prefix and returns the paths
// written.
func Write(prefix string, res *analyzer.Result, opts Options) ([]string, error) {
	var written []string

	reports := []reportFile{
		{AssaySuffix, func(f *os.File) error { return gocsv.MarshalFile(AssayRows(res), f) }},
		{LIMSSuffix, func(f *os.File) error { return writeLIMS(f, LIMSRows(res)) }},
		{FullSuffix, func(f *os.File) error { return gocsv.MarshalFile(FullRows(res), f) }},
	}
	if opts.SampleReport {
		reports = append(reports, reportFile{SampleSuffix, func(f *os.File) error { return gocsv.MarshalFile(SampleRows(res), f) }})
	}

	for _, r := range reports {
		path := prefix + r.suffix
		if err := writeFile(path, r.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

type reportFile struct {
	suffix string
	write  func(f *os.File) error
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// writeLIMS writes the LIMS layout, whose first column has no header.
func writeLIMS(f *os.File, rows []LIMSRow) error {
	w := gocsv.DefaultCSVWriter(f)

	if err := w.Write(append([]string{""}, limsHeader...)); err != nil {
		return err
	}

	return gocsv.MarshalCSVWithoutHeaders(rows, w)
}

var limsHeader = []string{
	"Number", "Assay", "Cycle", "FunctionalGroup", "GeneClass", "Measure",
	"JIC", "Sample", "meanCopyN", "stderr_CopyN", "Mean_Efficiency", "QCSample",
}
