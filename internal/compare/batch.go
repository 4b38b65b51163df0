package compare

import (
	"fmt"

	"lente/internal/errs"
	"lente/internal/records"
)

// SplitPairs partitions a pair list into parts contiguous, order-preserving
// sub-lists whose sizes differ by at most one. Concatenating the sub-lists in
// order reproduces the input exactly. When parts exceeds the list length the
// trailing sub-lists are empty.
func SplitPairs(pairs []records.Pair, parts int) ([][]records.Pair, error) {
	if parts < 1 {
		return nil, errs.Wrap(errs.ErrConfiguration, "compare", "split",
			fmt.Sprintf("number of batches must be positive, got %d", parts), nil)
	}
	n := len(pairs)
	out := make([][]records.Pair, parts)
	for i := 0; i < parts; i++ {
		lo := i*(n/parts) + min(i, n%parts)
		hi := (i+1)*(n/parts) + min(i+1, n%parts)
		out[i] = pairs[lo:hi]
	}
	return out, nil
}
