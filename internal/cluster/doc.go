// Package cluster groups confirmed match pairs into canonical identity
// clusters.
//
// Deduplication uses a union-find forest to compute the transitive closure of
// the confirmed-pair graph: records reachable from one another end up under a
// single root identifier. Which records share a cluster depends only on graph
// connectivity; the chosen root of each cluster depends on pair processing
// order and the union-by-size tie-break, and is reproducible for identical
// input.
//
// Linkage grouping is simpler: the two record universes are disjoint, so each
// left record just lists the right records it matched, most frequent first.
package cluster
