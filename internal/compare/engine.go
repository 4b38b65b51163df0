package compare

import (
	"fmt"

	"lente/internal/errs"
	"lente/internal/records"
)

// Options controls a comparison pass.
type Options struct {
	// Batches partitions the pair list into this many contiguous sub-lists
	// compared independently. Values below 1 are treated as a single batch.
	Batches int
	// Threshold, when HasThreshold is set, censors every computed score below
	// it to exactly 0.0 after the pass. Thresholds above 1.0 are ignored.
	Threshold    float64
	HasThreshold bool
	// Progress receives one callback per batch. Nil disables reporting.
	Progress Progress
}

// Compute evaluates every rule for every candidate pair and returns the
// similarity matrix. For deduplication right is nil and both sides of each
// pair resolve against left. An empty pair list yields an empty matrix.
//
// The matrix rows follow batch concatenation order. A failure in any batch
// aborts the pass; no partial matrix is returned.
func Compute(pairs []records.Pair, left, right *records.Table, rules RuleSet, opts Options) (*Matrix, error) {
	if rules.Len() == 0 {
		return nil, errs.Wrap(errs.ErrConfiguration, "compare", "compute", "no comparison rules configured", nil)
	}
	if left == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "compare", "compute", "left record table is required", nil)
	}
	rightTable := right
	if rightTable == nil {
		rightTable = left
	}

	labels := rules.Labels()
	if len(pairs) == 0 {
		return NewMatrix(nil, labels, nil)
	}

	batches := opts.Batches
	if batches < 1 {
		batches = 1
	}
	split, err := SplitPairs(pairs, batches)
	if err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = NopProgress{}
	}

	orderedPairs := make([]records.Pair, 0, len(pairs))
	rows := make([][]float64, 0, len(pairs))
	for b, batch := range split {
		progress.Batch(b+1, len(split), len(batch))
		batchRows, err := compareBatch(batch, left, rightTable, rules.rules)
		if err != nil {
			return nil, fmt.Errorf("batch %d/%d: %w", b+1, len(split), err)
		}
		orderedPairs = append(orderedPairs, batch...)
		rows = append(rows, batchRows...)
	}

	matrix, err := NewMatrix(orderedPairs, labels, rows)
	if err != nil {
		return nil, err
	}

	if opts.HasThreshold && opts.Threshold <= 1.0 {
		matrix = matrix.Censor(opts.Threshold)
	}
	return matrix, nil
}

func compareBatch(batch []records.Pair, left, right *records.Table, rules []Rule) ([][]float64, error) {
	rows := make([][]float64, 0, len(batch))
	for _, pair := range batch {
		if !left.Has(pair.Left) {
			return nil, errs.Wrap(errs.ErrData, "compare", "compute",
				fmt.Sprintf("pair references unknown left record %q", pair.Left), nil)
		}
		if !right.Has(pair.Right) {
			return nil, errs.Wrap(errs.ErrData, "compare", "compute",
				fmt.Sprintf("pair references unknown right record %q", pair.Right), nil)
		}

		row := make([]float64, len(rules))
		for j, rule := range rules {
			a := left.Field(pair.Left, rule.Left)
			b := right.Field(pair.Right, rule.Right)
			row[j] = scoreRule(rule, a, b)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func scoreRule(rule Rule, a, b records.Value) float64 {
	switch rule.Method {
	case MethodExact:
		if a.Equal(b) {
			return 1.0
		}
		return 0.0
	case MethodString:
		if a.IsNull() || b.IsNull() {
			return 0.0
		}
		score := similarity(rule.Algorithm, a.Text(), b.Text())
		if rule.HasThreshold {
			if score >= rule.Threshold {
				return 1.0
			}
			return 0.0
		}
		return score
	default:
		// Reserved methods keep their column but compute nothing.
		return Missing()
	}
}
