package antlr

import (
	"strconv"
	"strings"
)

// compareVersions compares dotted version strings numerically, segment by
// segment; missing segments count as zero. Underscore separators (legacy
// Java update releases like 1.8.0_292) are treated as dots. Returns -1, 0
// or 1.
func compareVersions(a, b string) int {
	as := versionSegments(a)
	bs := versionSegments(b)

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// versionSegments splits a version string into its numeric components.
// Non-numeric segments terminate the parse.
func versionSegments(v string) []int {
	v = strings.ReplaceAll(v, "_", ".")
	parts := strings.Split(v, ".")
	segments := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		segments = append(segments, n)
	}
	return segments
}
