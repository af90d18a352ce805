package stats

import "sort"

// Count is a value and how often it occurred.
type Count[T comparable] struct {
	Value T
	Count int
}

// Mode returns the most frequent value. Ties go to the value seen first.
// ok is false when values is empty.
func Mode[T comparable](values []T) (mode T, ok bool) {
	counts := Frequencies(values)
	if len(counts) == 0 {
		return mode, false
	}
	return counts[0].Value, true
}

// Frequencies counts values, ordered by descending count with ties in
// first-seen order.
func Frequencies[T comparable](values []T) []Count[T] {
	index := make(map[T]int)
	var counts []Count[T]
	for _, v := range values {
		if i, seen := index[v]; seen {
			counts[i].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, Count[T]{Value: v, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// modeCount returns the mode and how often it occurred.
func modeCount[T comparable](values []T) (Count[T], bool) {
	counts := Frequencies(values)
	if len(counts) == 0 {
		return Count[T]{}, false
	}
	return counts[0], true
}
