package ai

import (
	"slices"

	"github.com/pthm-cable/taiga/geo"
)

// Best returns every position holding the maximum value, ordered by X then Y.
// The first element is the chosen target. An empty map yields nil.
func (m ValueMap) Best() []geo.Position {
	var best []geo.Position
	var top int
	for pos, v := range m {
		switch {
		case len(best) == 0 || v > top:
			best = append(best[:0], pos)
			top = v
		case v == top:
			best = append(best, pos)
		}
	}
	slices.SortFunc(best, func(a, b geo.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})
	return best
}

// Sum returns the total of all values.
func (m ValueMap) Sum() int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
