package alloc

import (
	"sort"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/natural"
)

// rackPair is an unordered rack pair, stored canonically as (lo, hi) under
// natural order so that a demand written A→B and one written B→A land in
// the same bucket.
type rackPair struct {
	lo, hi string
}

// normalizeDemands groups demands by unordered rack pair and by media,
// merging counts. Self-loops are assumed already rejected by Validate; this
// function does no validation of its own.
func normalizeDemands(demands []domain.Demand) (map[rackPair]map[domain.EndpointType]int, []rackPair) {
	byPair := make(map[rackPair]map[domain.EndpointType]int)

	for _, d := range demands {
		lo, hi := natural.Pair(d.Src, d.Dst)
		pair := rackPair{lo: lo, hi: hi}
		if _, ok := byPair[pair]; !ok {
			byPair[pair] = make(map[domain.EndpointType]int)
		}
		byPair[pair][d.EndpointType] += d.Count
	}

	pairs := make([]rackPair, 0, len(byPair))
	for pair := range byPair {
		pairs = append(pairs, pair)
	}
	sortPairs(pairs)

	return byPair, pairs
}

func sortPairs(pairs []rackPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].lo != pairs[j].lo {
			return natural.Less(pairs[i].lo, pairs[j].lo)
		}
		return natural.Less(pairs[i].hi, pairs[j].hi)
	})
}
