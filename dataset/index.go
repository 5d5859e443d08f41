package dataset

import (
	"github.com/carbocation/smartchip/qstat"
)

// Columns names the input columns the index is built from.
type Columns struct {
	Assay      string
	Sample     string
	Ct         string
	Efficiency string // Optional. If empty, every group's efficiency is NaN.

	// Keys is the ordered tuple of identifying columns. Defaults to
	// {Assay, Sample}.
	Keys []string
}

// KeyColumns returns Keys, or {Assay, Sample} if Keys is unset.
func (c Columns) KeyColumns() []string {
	if len(c.Keys) > 0 {
		return c.Keys
	}
	return []string{c.Assay, c.Sample}
}

// Required lists the columns that must be present in the input.
func (c Columns) Required() []string {
	out := append([]string{c.Assay, c.Sample, c.Ct}, c.Keys...)
	if c.Efficiency != "" {
		out = append(out, c.Efficiency)
	}
	return out
}

// Index is everything the QC stage needs from one input table. It is built
// once and not modified afterwards.
type Index struct {
	// Distinct Ct values per group.
	GroupCt *SeriesMap

	// Distinct Ct values per assay, keyed by NewGroupKey(assay).
	AssayCt *SeriesMap

	// Distinct reported efficiencies per group.
	GroupEfficiency *SeriesMap

	// Groups belonging to each assay, keyed by NewGroupKey(assay).
	Members *Members

	// NaN-aware mean and sample SD of each group's Ct series.
	CtMean map[GroupKey]float64
	CtSD   map[GroupKey]float64

	// Assays and Groups in report order (see CompareFold).
	Assays []string
	Groups []GroupKey

	groupAssay  map[GroupKey]string
	groupSample map[GroupKey]string
}

// Build indexes t. Column lookups that fail are returned as errors; cell
// values never are.
func Build(t *Table, cols Columns) (*Index, error) {
	keyCols := cols.KeyColumns()

	ix := &Index{
		CtMean:      make(map[GroupKey]float64),
		CtSD:        make(map[GroupKey]float64),
		groupAssay:  make(map[GroupKey]string),
		groupSample: make(map[GroupKey]string),
	}

	var err error
	if ix.GroupCt, err = GroupValues(t, keyCols, cols.Ct); err != nil {
		return nil, err
	}
	if ix.AssayCt, err = GroupValues(t, []string{cols.Assay}, cols.Ct); err != nil {
		return nil, err
	}
	if cols.Efficiency != "" {
		if ix.GroupEfficiency, err = GroupValues(t, keyCols, cols.Efficiency); err != nil {
			return nil, err
		}
	} else {
		ix.GroupEfficiency = newSeriesMap()
	}
	if ix.Members, err = GroupMembers(t, []string{cols.Assay}, keyCols); err != nil {
		return nil, err
	}

	keyIdx, err := t.Columns(keyCols)
	if err != nil {
		return nil, err
	}
	assayIdx, err := t.Column(cols.Assay)
	if err != nil {
		return nil, err
	}
	sampleIdx, err := t.Column(cols.Sample)
	if err != nil {
		return nil, err
	}

	// Later rows overwrite earlier ones, as for any other per-row label.
	for _, row := range t.Rows {
		k := rowKey(row, keyIdx)
		ix.groupAssay[k] = field(row, assayIdx)
		ix.groupSample[k] = field(row, sampleIdx)
	}

	for _, k := range ix.GroupCt.Keys() {
		ix.CtMean[k] = qstat.Mean(ix.GroupCt.Values(k), true)
		ix.CtSD[k] = qstat.StandardDeviation(ix.GroupCt.Values(k), true)
	}

	for _, k := range ix.Members.Keys() {
		ix.Assays = append(ix.Assays, k.Fields()[0])
	}
	SortStrings(ix.Assays)

	ix.Groups = ix.GroupCt.Keys()
	SortKeys(ix.Groups)

	return ix, nil
}

// AssayOf returns the assay recorded for group k.
func (ix *Index) AssayOf(k GroupKey) string {
	return ix.groupAssay[k]
}

// SampleOf returns the sample recorded for group k.
func (ix *Index) SampleOf(k GroupKey) string {
	return ix.groupSample[k]
}

// GroupsOf returns the groups of assay in first-seen order.
func (ix *Index) GroupsOf(assay string) []GroupKey {
	return ix.Members.Of(NewGroupKey(assay))
}

// HasAssay reports whether assay occurs in the table.
func (ix *Index) HasAssay(assay string) bool {
	return ix.Members.Has(NewGroupKey(assay))
}

// MeanCt returns the NaN-aware mean Ct of group k, NaN if k is unknown.
func (ix *Index) MeanCt(k GroupKey) float64 {
	if m, exists := ix.CtMean[k]; exists {
		return m
	}
	return nan
}

// MeanEfficiency returns the NaN-aware mean reported efficiency of group k.
func (ix *Index) MeanEfficiency(k GroupKey) float64 {
	return qstat.Mean(ix.GroupEfficiency.Values(k), true)
}
