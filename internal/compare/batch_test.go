package compare

import (
	"errors"
	"fmt"
	"testing"

	"lente/internal/errs"
	"lente/internal/records"
)

func makePairs(n int) []records.Pair {
	out := make([]records.Pair, n)
	for i := range out {
		out[i] = records.Pair{Left: fmt.Sprintf("l%d", i), Right: fmt.Sprintf("r%d", i)}
	}
	return out
}

func TestSplitPairsSizes(t *testing.T) {
	cases := []struct {
		n, parts int
		sizes    []int
	}{
		{10, 3, []int{4, 3, 3}},
		{10, 1, []int{10}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{3, 5, []int{1, 1, 1, 0, 0}},
		{0, 2, []int{0, 0}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_into_%d", tc.n, tc.parts), func(t *testing.T) {
			split, err := SplitPairs(makePairs(tc.n), tc.parts)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if len(split) != tc.parts {
				t.Fatalf("expected %d parts, got %d", tc.parts, len(split))
			}
			for i, part := range split {
				if len(part) != tc.sizes[i] {
					t.Fatalf("part %d: expected size %d, got %d", i, tc.sizes[i], len(part))
				}
			}
		})
	}
}

func TestSplitPairsConcatenationPreservesOrder(t *testing.T) {
	pairs := makePairs(7)
	split, err := SplitPairs(pairs, 3)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	var rebuilt []records.Pair
	for _, part := range split {
		rebuilt = append(rebuilt, part...)
	}
	if len(rebuilt) != len(pairs) {
		t.Fatalf("expected %d pairs after concatenation, got %d", len(pairs), len(rebuilt))
	}
	for i := range pairs {
		if rebuilt[i] != pairs[i] {
			t.Fatalf("order broken at %d: %v != %v", i, rebuilt[i], pairs[i])
		}
	}
}

func TestSplitPairsRejectsNonPositiveParts(t *testing.T) {
	if _, err := SplitPairs(makePairs(3), 0); !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
