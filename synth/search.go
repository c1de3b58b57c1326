package synth

import (
	"cmp"
	"slices"
)

// FindFirst returns the index of the first interval of
// (-inf, ar[0]], (ar[0], ar[1]], ..., (ar[n-1], +inf) that contains v,
// i.e. the smallest i such that v <= ar[i], or len(ar) when v > ar[n-1].
// ar must be non-decreasing. With duplicate values the leftmost qualifying
// index is returned.
func FindFirst[T cmp.Ordered](ar []T, v T) int {
	i, _ := slices.BinarySearch(ar, v)
	return i
}
