package standardize

import "math"

// rankBuckets is the number of rarity buckets; ranks run 0..rankBuckets-1.
const rankBuckets = 8

// rankEdges returns the bin edges for the rarity scale: zero followed by
// eight logarithmically spaced points from 1e-6 to 1. Bin i covers
// (edges[i], edges[i+1]].
func rankEdges() []float64 {
	edges := make([]float64, rankBuckets+1)
	edges[0] = 0
	for i := 0; i < rankBuckets; i++ {
		exponent := -6 + 6*float64(i)/float64(rankBuckets-1)
		edges[i+1] = math.Pow(10, exponent)
	}
	return edges
}

// frequencyRank buckets a relative frequency into the 0..7 rarity scale.
// Frequencies outside every bin (including zero) fall back to rank 0.
func frequencyRank(frequency float64) float64 {
	edges := rankEdges()
	for i := 0; i < rankBuckets; i++ {
		if frequency > edges[i] && frequency <= edges[i+1] {
			return float64(i)
		}
	}
	return 0
}

// nameRanks computes the rarity rank of every distinct name in the column.
// Frequencies are relative to total, the full row count of the source table,
// so rows with a blank name still dilute the scale.
func nameRanks(names []string, total int) map[string]float64 {
	if total <= 0 {
		return map[string]float64{}
	}
	counts := make(map[string]int, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		counts[name]++
	}
	ranks := make(map[string]float64, len(counts))
	for name, count := range counts {
		ranks[name] = frequencyRank(float64(count) / float64(total))
	}
	return ranks
}
