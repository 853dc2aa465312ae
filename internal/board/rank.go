package board

import (
	"sort"

	"github.com/ackboard/ackboard/internal/ack"
)

// sortOrder rotates the canonical category order so primary sits first while
// the others keep their relative positions.
func sortOrder(primary ack.Category) [4]ack.Category {
	order := ack.SortCategories
	idx := 0
	for i, c := range order {
		if c == primary {
			idx = i
			break
		}
	}
	rotated := [4]ack.Category{order[idx]}
	n := 1
	for i, c := range order {
		if i != idx {
			rotated[n] = c
			n++
		}
	}
	return rotated
}

// rankKey is a record's count tuple under a given category order.
func rankKey(r Record, order [4]ack.Category) [4]int {
	var key [4]int
	for i, c := range order {
		key[i] = r.Acks.Count(c)
	}
	return key
}

// Rank returns a copy of records sorted by descending count tuple, with
// primary's count compared first. The sort is stable, so records with equal
// tuples keep their incoming order, and the input slice is never reordered.
func Rank(records []Record, primary ack.Category) []Record {
	order := sortOrder(primary)
	ranked := make([]Record, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := rankKey(ranked[i], order), rankKey(ranked[j], order)
		for n := range a {
			if a[n] != b[n] {
				return a[n] > b[n]
			}
		}
		return false
	})
	return ranked
}
