package helpers

import "sort"

// SortByID orders items ascending by the id returned from key.
func SortByID[T any](items []T, key func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]) < key(items[j])
	})
}
