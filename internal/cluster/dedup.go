package cluster

import "lente/internal/records"

// Dedup computes the transitive closure of confirmed pairs within a single
// record set. The result maps each cluster's root identifier to the other
// identifiers in the cluster; the root is never listed among its own members.
// Identifiers that appear in no pair are absent from the result.
//
// Pairs are processed in input order; identical input yields an identical
// partition and identical roots.
func Dedup(pairs []records.Pair) map[string][]string {
	if len(pairs) == 0 {
		return map[string][]string{}
	}

	all := make([]string, 0, len(pairs)*2)
	for _, pair := range pairs {
		all = append(all, pair.Left, pair.Right)
	}
	f := newForest(sortedUnique(all))

	for _, pair := range pairs {
		f.union(f.index[pair.Left], f.index[pair.Right])
	}

	clusters := make(map[string][]string)
	for i, id := range f.ids {
		root := f.ids[f.find(i)]
		if root == id {
			continue
		}
		clusters[root] = append(clusters[root], id)
	}
	return clusters
}
