// Package classify post-processes a comparison matrix by merging externally
// computed auxiliary ranking features, producing the final artifact handed to
// the thresholding and annotation stage.
package classify

import (
	"lente/internal/compare"
	"lente/internal/errs"
	"lente/internal/records"
)

// RankUnknown fills auxiliary rank columns for rows whose left record carries
// no rank value. 7 is the worst-case bucket on the 0..7 rarity scale: a name
// so common it contributes no matching confidence.
const RankUnknown = 7.0

// MergeRanks left-joins the named auxiliary rank columns from the left-side
// record table onto the matrix, keyed by the left identifier of each pair
// row. Rows with no rank value receive RankUnknown. The input matrix is not
// modified.
func MergeRanks(matrix *compare.Matrix, left *records.Table, labels ...string) (*compare.Matrix, error) {
	if matrix == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "classify", "merge ranks", "comparison matrix is required", nil)
	}
	if left == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "classify", "merge ranks", "left record table is required", nil)
	}
	if len(labels) == 0 {
		return matrix, nil
	}

	columns := make([][]float64, len(labels))
	for k, label := range labels {
		column := make([]float64, matrix.Len())
		for i := 0; i < matrix.Len(); i++ {
			pair := matrix.PairAt(i)
			rank, ok := left.Field(pair.Left, label).Float()
			if !ok {
				rank = RankUnknown
			}
			column[i] = rank
		}
		columns[k] = column
	}
	return matrix.WithColumns(labels, columns)
}
