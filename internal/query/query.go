// Package query implements the predicate-based filter and sort engine used
// by every collection listing, plus the per-collection filter definitions.
package query

import "sort"

// Predicate is a boolean test against one record.
type Predicate[T any] func(T) bool

// Filter returns the records satisfying every predicate. Predicates are
// conjunctive; with no predicates the input is returned unchanged in a new
// slice.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// SortBy stable-sorts records in place with the given less function.
func SortBy[T any](records []T, less func(a, b T) bool) {
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}
