package util

import (
	"fmt"
	"sort"
)

// OrderedKeys returns the keys of a string-keyed map in alphabetical order.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Alphabetized returns the elements of a set in alphabetical order of their
// string forms.
func Alphabetized[E comparable](s ISet[E]) []string {
	convs := []string{}
	for _, e := range s.Elements() {
		convs = append(convs, fmt.Sprintf("%v", e))
	}
	sort.Strings(convs)
	return convs
}

// SortBy returns a sorted copy of a slice using the given comparison, which
// must return true when a orders before b.
func SortBy[E any](sl []E, less func(a, b E) bool) []E {
	sorted := make([]E, len(sl))
	copy(sorted, sl)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// EqualSlices reports whether two slices of comparable elements have the same
// contents in the same order.
func EqualSlices[E comparable](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
