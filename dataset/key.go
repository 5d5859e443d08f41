package dataset

import "strings"

// MissingLabel is how a key whose identifying fields are all empty renders.
const MissingLabel = "NAN"

// keySep is the ASCII unit separator, which instrument exports do not
// contain.
const keySep = "\x1f"

// GroupKey identifies a group by the ordered tuple of its identifying column
// values (canonically assay, then sample). Keys are comparable and may be
// used as map keys. Two different tuples are always different keys, even
// when their concatenations are equal.
type GroupKey struct {
	joined string
}

// NewGroupKey builds a key from the ordered identifying values.
func NewGroupKey(fields ...string) GroupKey {
	return GroupKey{joined: strings.Join(fields, keySep)}
}

// Fields returns the identifying values in order.
func (k GroupKey) Fields() []string {
	return strings.Split(k.joined, keySep)
}

// String renders the key as the concatenation of its fields with no
// separator, e.g. ("16S", "STD1") => "16SSTD1". This is the form that
// control/standard markers are searched in and that keys are sorted by.
func (k GroupKey) String() string {
	s := strings.ReplaceAll(k.joined, keySep, "")
	if s == "" {
		return MissingLabel
	}

	return s
}

// Contains reports whether marker occurs in the rendered key.
func (k GroupKey) Contains(marker string) bool {
	return strings.Contains(k.String(), marker)
}
