package cluster

import (
	"sort"

	"lente/internal/records"
)

// Linkage groups confirmed cross-source pairs by left identifier. Each left
// record maps to its distinct matched right identifiers ordered by descending
// match count, ties broken by first occurrence in the pair list. The two
// universes are disjoint, so no transitive merging happens.
func Linkage(pairs []records.Pair) map[string][]string {
	type rightStat struct {
		id    string
		count int
		first int
	}

	stats := make(map[string]map[string]*rightStat)
	for i, pair := range pairs {
		byRight, ok := stats[pair.Left]
		if !ok {
			byRight = make(map[string]*rightStat)
			stats[pair.Left] = byRight
		}
		if stat, ok := byRight[pair.Right]; ok {
			stat.count++
		} else {
			byRight[pair.Right] = &rightStat{id: pair.Right, count: 1, first: i}
		}
	}

	groups := make(map[string][]string, len(stats))
	for left, byRight := range stats {
		ordered := make([]*rightStat, 0, len(byRight))
		for _, stat := range byRight {
			ordered = append(ordered, stat)
		}
		sort.Slice(ordered, func(a, b int) bool {
			if ordered[a].count != ordered[b].count {
				return ordered[a].count > ordered[b].count
			}
			return ordered[a].first < ordered[b].first
		})
		rights := make([]string, len(ordered))
		for i, stat := range ordered {
			rights[i] = stat.id
		}
		groups[left] = rights
	}
	return groups
}
