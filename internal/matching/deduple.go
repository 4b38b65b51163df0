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

// Deduple runs duplicate detection within a single record table.
type Deduple struct {
	table  *records.Table
	rules  compare.RuleSet
	logger *slog.Logger
	runID  string

	pairs []records.Pair
}

// NewDeduple builds a deduplication runner over a standardized table.
func NewDeduple(table *records.Table, rules compare.RuleSet, logger *slog.Logger) (*Deduple, error) {
	if table == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "matching", "deduple", "record table is required", nil)
	}
	if rules.Len() == 0 {
		return nil, errs.Wrap(errs.ErrConfiguration, "matching", "deduple", "comparison rules are required", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &Deduple{
		table:  table,
		rules:  rules,
		logger: logger.With(slog.String("component", "deduple"), slog.String("run_id", runID)),
		runID:  runID,
	}, nil
}

// RunID returns the generated identifier for this run.
func (d *Deduple) RunID() string { return d.runID }

// DefinePairs generates the candidate pairs with sorted-neighbourhood
// blocking on the given key.
func (d *Deduple) DefinePairs(blockKey string, window int) error {
	pairs, err := blocking.Dedup(d.table, blockKey, window)
	if err != nil {
		return err
	}
	d.pairs = pairs
	d.logger.Info("candidate pairs defined",
		slog.String("block_key", blockKey),
		slog.Int("window", window),
		slog.Int("pairs", len(pairs)),
	)
	return nil
}

// Pairs returns the candidate pairs from the last DefinePairs call.
func (d *Deduple) Pairs() []records.Pair {
	out := make([]records.Pair, len(d.pairs))
	copy(out, d.pairs)
	return out
}

// Run compares every candidate pair and returns the classified matrix. An
// empty candidate set is a no-op success yielding an empty matrix.
func (d *Deduple) Run(opts Options) (*compare.Matrix, error) {
	matrix, err := compare.Compute(d.pairs, d.table, nil, d.rules, compare.Options{
		Batches:      opts.Batches,
		Threshold:    opts.Threshold,
		HasThreshold: opts.HasThreshold,
		Progress:     logProgress{logger: d.logger},
	})
	if err != nil {
		return nil, err
	}
	matrix, err = classify.MergeRanks(matrix, d.table, opts.RankLabels...)
	if err != nil {
		return nil, err
	}
	d.logger.Info("comparison complete", slog.Int("rows", matrix.Len()), slog.Int("columns", len(matrix.Labels())))
	return matrix, nil
}
