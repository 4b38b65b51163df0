package matching

import (
	"log/slog"

	"github.com/google/uuid"

	"lente/internal/blocking"
	"lente/internal/classify"
	"lente/internal/compare"
	"lente/internal/errs"
	"lente/internal/records"
)

// Linkage runs probabilistic linkage across two record tables with disjoint
// identifier universes.
type Linkage struct {
	left   *records.Table
	right  *records.Table
	rules  compare.RuleSet
	logger *slog.Logger
	runID  string

	pairs []records.Pair
}

// NewLinkage builds a linkage runner over two standardized tables.
func NewLinkage(left, right *records.Table, rules compare.RuleSet, logger *slog.Logger) (*Linkage, error) {
	if left == nil || right == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "matching", "linkage", "both record tables are required", nil)
	}
	if rules.Len() == 0 {
		return nil, errs.Wrap(errs.ErrConfiguration, "matching", "linkage", "comparison rules are required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &Linkage{
		left:   left,
		right:  right,
		rules:  rules,
		logger: logger.With(slog.String("component", "linkage"), slog.String("run_id", runID)),
		runID:  runID,
	}, nil
}

// RunID returns the generated identifier for this run.
func (l *Linkage) RunID() string { return l.runID }

// DefinePairs generates the candidate pairs with sorted-neighbourhood
// blocking over the merged key order of both sides.
func (l *Linkage) DefinePairs(leftKey, rightKey string, window int) error {
	pairs, err := blocking.Linkage(l.left, l.right, leftKey, rightKey, window)
	if err != nil {
		return err
	}
	l.pairs = pairs
	l.logger.Info("candidate pairs defined",
		slog.String("left_key", leftKey),
		slog.String("right_key", rightKey),
		slog.Int("window", window),
		slog.Int("pairs", len(pairs)),
	)
	return nil
}

// Pairs returns the candidate pairs from the last DefinePairs call.
func (l *Linkage) Pairs() []records.Pair {
	out := make([]records.Pair, len(l.pairs))
	copy(out, l.pairs)
	return out
}

// Run compares every candidate pair and returns the classified matrix. Rank
// columns are joined from the left table. An empty candidate set is a no-op
// success yielding an empty matrix.
func (l *Linkage) Run(opts Options) (*compare.Matrix, error) {
	matrix, err := compare.Compute(l.pairs, l.left, l.right, l.rules, compare.Options{
		Batches:      opts.Batches,
		Threshold:    opts.Threshold,
		HasThreshold: opts.HasThreshold,
		Progress:     logProgress{logger: l.logger},
	})
	if err != nil {
		return nil, err
	}
	matrix, err = classify.MergeRanks(matrix, l.left, opts.RankLabels...)
	if err != nil {
		return nil, err
	}
	l.logger.Info("comparison complete", slog.Int("rows", matrix.Len()), slog.Int("columns", len(matrix.Labels())))
	return matrix, nil
}
