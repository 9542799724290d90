// Package natural implements natural-order string comparison: trailing digit
// suffixes compare numerically so that "R2" sorts before "R10".
package natural

import (
	"regexp"
	"sort"
	"strconv"
)

var trailingDigits = regexp.MustCompile(`^(.*?)(\d+)$`)

// key is a four-part sort key: a non-digit prefix, a flag distinguishing
// digit-suffixed values (0) from plain strings (1), the numeric value of
// the digit suffix, and the full original string as a final tie-break.
type key struct {
	prefix string
	flag   int
	num    int
	full   string
}

func keyOf(s string) key {
	if m := trailingDigits.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil {
			return key{prefix: m[1], flag: 0, num: n, full: s}
		}
	}
	return key{prefix: s, flag: 1, num: 0, full: s}
}

func compareKeys(a, b key) int {
	if a.prefix != b.prefix {
		if a.prefix < b.prefix {
			return -1
		}
		return 1
	}
	if a.flag != b.flag {
		if a.flag < b.flag {
			return -1
		}
		return 1
	}
	if a.num != b.num {
		if a.num < b.num {
			return -1
		}
		return 1
	}
	if a.full != b.full {
		if a.full < b.full {
			return -1
		}
		return 1
	}
	return 0
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b under
// natural order.
func Compare(a, b string) int {
	return compareKeys(keyOf(a), keyOf(b))
}

// Less reports whether a sorts before b under natural order. Suitable as a
// sort.Slice / slices.SortFunc comparator building block.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort sorts values in place by natural order.
func Sort(values []string) {
	sort.Slice(values, func(i, j int) bool { return Less(values[i], values[j]) })
}

// Pair returns (lo, hi) such that lo precedes hi under natural order.
func Pair(a, b string) (string, string) {
	if Less(b, a) {
		return b, a
	}
	return a, b
}
