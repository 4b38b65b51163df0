package compare

import (
	"fmt"
	"math"

	"lente/internal/errs"
	"lente/internal/records"
)

// Missing returns the sentinel stored for scores that were never computed
// (reserved numeric and date rule columns).
func Missing() float64 { return math.NaN() }

// IsMissing reports whether a score is the not-computed sentinel.
func IsMissing(score float64) bool { return math.IsNaN(score) }

// Matrix is the immutable result of a comparison pass: one row per candidate
// pair, one column per rule label plus any merged auxiliary columns.
type Matrix struct {
	pairs  []records.Pair
	labels []string
	index  map[string]int
	rows   [][]float64
}

// NewMatrix assembles a matrix from rows in pair order. Each row must have
// one score per label.
func NewMatrix(pairs []records.Pair, labels []string, rows [][]float64) (*Matrix, error) {
	if len(rows) != len(pairs) {
		return nil, errs.Wrap(errs.ErrData, "compare", "matrix",
			fmt.Sprintf("row count %d does not match pair count %d", len(rows), len(pairs)), nil)
	}
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, dup := index[label]; dup {
			return nil, errs.Wrap(errs.ErrConfiguration, "compare", "matrix",
				fmt.Sprintf("duplicate column label %q", label), nil)
		}
		index[label] = i
	}
	for i, row := range rows {
		if len(row) != len(labels) {
			return nil, errs.Wrap(errs.ErrData, "compare", "matrix",
				fmt.Sprintf("row %d has %d scores for %d labels", i, len(row), len(labels)), nil)
		}
	}

	m := &Matrix{
		pairs:  make([]records.Pair, len(pairs)),
		labels: make([]string, len(labels)),
		index:  index,
		rows:   make([][]float64, len(rows)),
	}
	copy(m.pairs, pairs)
	copy(m.labels, labels)
	for i, row := range rows {
		cp := make([]float64, len(row))
		copy(cp, row)
		m.rows[i] = cp
	}
	return m, nil
}

// Len returns the number of pair rows.
func (m *Matrix) Len() int { return len(m.pairs) }

// Pairs returns the pair rows in matrix order. With batched computation this
// is the batch concatenation order, which need not match the original
// candidate-pair order.
func (m *Matrix) Pairs() []records.Pair {
	out := make([]records.Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Labels returns the column labels in order.
func (m *Matrix) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// PairAt returns the pair at a row position.
func (m *Matrix) PairAt(i int) records.Pair { return m.pairs[i] }

// Row returns a copy of the scores at a row position, in label order.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, len(m.rows[i]))
	copy(out, m.rows[i])
	return out
}

// Score returns the score at a row position for a labeled column.
func (m *Matrix) Score(i int, label string) (float64, bool) {
	col, ok := m.index[label]
	if !ok {
		return 0, false
	}
	return m.rows[i][col], true
}

// Censor returns a new matrix with every score below threshold overwritten
// with exactly 0.0. Not-computed sentinels are left untouched. This is a pure
// element-wise operation; no rows are dropped.
func (m *Matrix) Censor(threshold float64) *Matrix {
	out := m.clone()
	for _, row := range out.rows {
		for j, score := range row {
			if score < threshold {
				row[j] = 0.0
			}
		}
	}
	return out
}

// WithColumns returns a new matrix extended with additional labeled columns.
// Each column must carry one value per row.
func (m *Matrix) WithColumns(labels []string, columns [][]float64) (*Matrix, error) {
	if len(labels) != len(columns) {
		return nil, errs.Wrap(errs.ErrData, "compare", "matrix",
			fmt.Sprintf("%d labels for %d columns", len(labels), len(columns)), nil)
	}
	out := m.clone()
	for k, label := range labels {
		if _, dup := out.index[label]; dup {
			return nil, errs.Wrap(errs.ErrConfiguration, "compare", "matrix",
				fmt.Sprintf("duplicate column label %q", label), nil)
		}
		if len(columns[k]) != len(out.rows) {
			return nil, errs.Wrap(errs.ErrData, "compare", "matrix",
				fmt.Sprintf("column %q has %d values for %d rows", label, len(columns[k]), len(out.rows)), nil)
		}
		out.index[label] = len(out.labels)
		out.labels = append(out.labels, label)
		for i := range out.rows {
			out.rows[i] = append(out.rows[i], columns[k][i])
		}
	}
	return out, nil
}

func (m *Matrix) clone() *Matrix {
	out := &Matrix{
		pairs:  make([]records.Pair, len(m.pairs)),
		labels: make([]string, len(m.labels)),
		index:  make(map[string]int, len(m.index)),
		rows:   make([][]float64, len(m.rows)),
	}
	copy(out.pairs, m.pairs)
	copy(out.labels, m.labels)
	for label, col := range m.index {
		out.index[label] = col
	}
	for i, row := range m.rows {
		cp := make([]float64, len(row))
		copy(cp, row)
		out.rows[i] = cp
	}
	return out
}
