package dataset

import "math"

var nan = math.NaN()

// SeriesMap maps group keys to the distinct values observed for them, in the
// order they were first seen. A value equal (==) to one already recorded for
// the same key is dropped, so counts and means reflect distinct values and
// not raw row counts. NaN never equals itself, so every missing value is
// kept.
type SeriesMap struct {
	keys   []GroupKey
	values map[GroupKey][]float64

	// Unparsed counts non-empty cells that could not be read as numbers and
	// were recorded as NaN.
	Unparsed int
}

func newSeriesMap() *SeriesMap {
	return &SeriesMap{values: make(map[GroupKey][]float64)}
}

func (s *SeriesMap) add(key GroupKey, value float64) {
	existing, seen := s.values[key]
	if !seen {
		s.keys = append(s.keys, key)
	}
	for _, v := range existing {
		if v == value {
			return
		}
	}
	s.values[key] = append(existing, value)
}

// Keys returns the keys in first-seen order.
func (s *SeriesMap) Keys() []GroupKey {
	return append([]GroupKey(nil), s.keys...)
}

// Values returns the series for key, or nil if key was never seen. The
// returned slice must not be modified.
func (s *SeriesMap) Values(key GroupKey) []float64 {
	return s.values[key]
}

// Has reports whether key was seen.
func (s *SeriesMap) Has(key GroupKey) bool {
	_, exists := s.values[key]
	return exists
}

// Len is the number of distinct keys.
func (s *SeriesMap) Len() int {
	return len(s.keys)
}

// Collisions groups keys whose rendered strings are equal although their
// tuples differ, e.g. ("A","B1") and ("AB","1"). Such groups are kept apart,
// but anything that searches rendered keys for markers may confuse them.
func (s *SeriesMap) Collisions() map[string][]GroupKey {
	byLabel := make(map[string][]GroupKey)
	for _, k := range s.keys {
		byLabel[k.String()] = append(byLabel[k.String()], k)
	}

	out := make(map[string][]GroupKey)
	for label, keys := range byLabel {
		if len(keys) > 1 {
			out[label] = keys
		}
	}

	return out
}

// GroupValues builds a SeriesMap keyed by the ordered tuple of keyCols, with
// the numeric value of valueCol. Empty cells become NaN. Grouping by the
// assay column alone gives the per-assay series.
func GroupValues(t *Table, keyCols []string, valueCol string) (*SeriesMap, error) {
	keyIdx, err := t.Columns(keyCols)
	if err != nil {
		return nil, err
	}
	valueIdx, err := t.Column(valueCol)
	if err != nil {
		return nil, err
	}

	out := newSeriesMap()
	for _, row := range t.Rows {
		v, ok := ParseValue(field(row, valueIdx))
		if !ok {
			out.Unparsed++
		}
		out.add(rowKey(row, keyIdx), v)
	}

	return out, nil
}

// PercentBelowThreshold returns, per key, the fraction of its distinct values
// that are <= threshold. NaN values count in the denominator but never as
// being below the threshold.
func PercentBelowThreshold(s *SeriesMap, threshold float64) map[GroupKey]float64 {
	out := make(map[GroupKey]float64, s.Len())
	for _, key := range s.keys {
		values := s.values[key]
		below := 0.0
		for _, v := range values {
			if v <= threshold {
				below++
			}
		}
		out[key] = below / float64(len(values))
	}

	return out
}

func rowKey(row []string, cols []int) GroupKey {
	fields := make([]string, len(cols))
	for i, c := range cols {
		fields[i] = field(row, c)
	}

	return NewGroupKey(fields...)
}
