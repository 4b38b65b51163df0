package records

// Pair is an ordered pair of record identifiers selected for comparison.
// For deduplication both sides come from the same table; for linkage the
// left and right identifiers come from disjoint tables.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}
