package compare

// Progress observes batch-level progress of a comparison pass. Implementations
// decide the output channel; the engine only reports batch boundaries.
type Progress interface {
	// Batch is invoked once per batch before it is compared. index counts
	// from 1; total is the number of batches; size is the batch's pair count.
	Batch(index, total, size int)
}

// NopProgress discards progress reports.
type NopProgress struct{}

// Batch implements Progress.
func (NopProgress) Batch(int, int, int) {}
