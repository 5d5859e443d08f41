package dataset

import (
	"sort"
	"strings"
)

// CompareFold orders strings case-insensitively (ASCII), byte by byte. If one
// string is a case-insensitive prefix of the other, the shorter comes first.
// Strings that are equal ignoring case are ordered case-sensitively, so the
// order is total and reports come out the same on every run.
func CompareFold(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	for i := 0; i < n; i++ {
		la, lb := lowerASCII(a[i]), lowerASCII(b[i])
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return strings.Compare(a, b)
}

// SortStrings sorts in place by CompareFold.
func SortStrings(s []string) {
	sort.SliceStable(s, func(i, j int) bool { return CompareFold(s[i], s[j]) < 0 })
}

// SortKeys sorts in place by CompareFold of the rendered keys. Keys that
// render identically are ordered by their tuples.
func SortKeys(keys []GroupKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		if c := CompareFold(keys[i].String(), keys[j].String()); c != 0 {
			return c < 0
		}
		return keys[i].joined < keys[j].joined
	})
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
