package iof

import (
	"sort"
)

// sortSplits orders split events ascending by elapsed seconds. A split
// without a recorded time sorts before every split that has one; the sort
// is stable so equal keys keep document order.
func sortSplits(splits []SplitTime) {
	sort.SliceStable(splits, func(i, j int) bool {
		a, b := splits[i].Seconds, splits[j].Seconds
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		default:
			return *a < *b
		}
	})
}

// sortByPosition orders competitors ascending by placement. Competitors
// without a placement sort after everyone that has one, keeping their
// relative document order.
func sortByPosition(comps []CompetitorResult) {
	maxPos := 0
	for _, c := range comps {
		if c.Position != nil && *c.Position > maxPos {
			maxPos = *c.Position
		}
	}
	key := func(c CompetitorResult) int {
		if c.Position == nil {
			return maxPos + 1
		}
		return *c.Position
	}
	sort.SliceStable(comps, func(i, j int) bool {
		return key(comps[i]) < key(comps[j])
	})
}
