package annotation

// Classification labels a reviewed pair. The empty value marks a pair
// awaiting review.
type Classification string

const (
	ClassificationNone      Classification = ""
	ClassificationPositive  Classification = "positive"
	ClassificationPotential Classification = "potential"
	ClassificationNegative  Classification = "negative"
)

// Identifiers carries the record ids of a pair in the review payload.
type Identifiers struct {
	A string `json:"a"`
	B string `json:"b"`
}

// PairObject is one reviewable pair in the export payload.
type PairObject struct {
	Cod            int            `json:"cod"`
	Classification Classification `json:"classification"`
	A              map[string]any `json:"a"`
	B              map[string]any `json:"b"`
	Identifiers    Identifiers    `json:"identifiers"`
	Agg            map[string]any `json:"agg"`
}

// Payload is the top-level structure of every annotation file.
type Payload struct {
	Pairs []PairObject `json:"pairs"`
}

// ClassifiedPair is one row of the table reconstructed from reviewed files.
type ClassifiedPair struct {
	Left           string
	Right          string
	Classification Classification
}
