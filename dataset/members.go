package dataset

// Members maps an outer key (typically the assay) to the distinct inner keys
// (typically assay+sample groups) that occur with it, in first-seen order.
type Members struct {
	keys    []GroupKey
	members map[GroupKey][]GroupKey
}

// GroupMembers collects, for each tuple of outerCols, the distinct tuples of
// innerCols found in the same rows.
func GroupMembers(t *Table, outerCols, innerCols []string) (*Members, error) {
	outerIdx, err := t.Columns(outerCols)
	if err != nil {
		return nil, err
	}
	innerIdx, err := t.Columns(innerCols)
	if err != nil {
		return nil, err
	}

	out := &Members{members: make(map[GroupKey][]GroupKey)}
	for _, row := range t.Rows {
		outer := rowKey(row, outerIdx)
		inner := rowKey(row, innerIdx)

		existing, seen := out.members[outer]
		if !seen {
			out.keys = append(out.keys, outer)
		}
		if containsKey(existing, inner) {
			continue
		}
		out.members[outer] = append(existing, inner)
	}

	return out, nil
}

// Of returns the members of outer in first-seen order. The slice must not be
// modified.
func (m *Members) Of(outer GroupKey) []GroupKey {
	if m == nil {
		return nil
	}
	return m.members[outer]
}

// Has reports whether outer occurred at all.
func (m *Members) Has(outer GroupKey) bool {
	if m == nil {
		return false
	}
	_, exists := m.members[outer]
	return exists
}

// Keys returns the outer keys in first-seen order.
func (m *Members) Keys() []GroupKey {
	if m == nil {
		return nil
	}
	return append([]GroupKey(nil), m.keys...)
}

func containsKey(keys []GroupKey, k GroupKey) bool {
	for _, v := range keys {
		if v == k {
			return true
		}
	}
	return false
}
