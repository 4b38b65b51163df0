package matching

// Options controls the comparison phase of a run.
type Options struct {
	// Batches partitions the candidate list for memory-bounded comparison.
	Batches int
	// Threshold, when HasThreshold is set, censors computed scores below it
	// to 0.0.
	Threshold    float64
	HasThreshold bool
	// RankLabels are the auxiliary rank columns merged onto the matrix after
	// comparison, joined on the left identifier.
	RankLabels []string
}
