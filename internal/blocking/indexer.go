package blocking

import (
	"fmt"
	"sort"

	"lente/internal/errs"
	"lente/internal/records"
)

type keyedRow struct {
	id  string
	key string
	pos int
}

func validateWindow(window int) error {
	if window < 1 || window%2 == 0 {
		return errs.Wrap(errs.ErrConfiguration, "blocking", "window",
			fmt.Sprintf("window must be a positive odd integer, got %d", window), nil)
	}
	return nil
}

// sortedRows collects the rows of a table that carry a non-absent blocking
// key, stably sorted by key with ties broken by original row order.
func sortedRows(table *records.Table, key string) []keyedRow {
	rows := make([]keyedRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		value := table.FieldAt(i, key)
		if value.IsNull() {
			continue
		}
		rows = append(rows, keyedRow{id: table.IDAt(i), key: value.Text(), pos: i})
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].key < rows[b].key })
	return rows
}

// keyRanks assigns every sorted key its dense rank, so equal keys share a
// rank and the neighbourhood distance counts distinct keys rather than rows.
func keyRanks(keys []string) []int {
	ranks := make([]int, len(keys))
	for i := 1; i < len(keys); i++ {
		ranks[i] = ranks[i-1]
		if keys[i] != keys[i-1] {
			ranks[i]++
		}
	}
	return ranks
}

// Dedup produces candidate pairs within a single table. Records are sorted by
// blocking key and paired when their key ranks lie within (window-1)/2 of each
// other, so records sharing a key are candidates at every window and a window
// of 1 degenerates to exact blocking. Each unordered pair appears at most
// once, with the record sorting earlier in the neighbourhood order on the
// left.
func Dedup(table *records.Table, key string, window int) ([]records.Pair, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if table == nil || table.Len() == 0 {
		return nil, nil
	}

	rows := sortedRows(table, key)
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.key
	}
	ranks := keyRanks(keys)
	half := (window - 1) / 2

	var pairs []records.Pair
	for i := range rows {
		for j := i + 1; j < len(rows) && ranks[j]-ranks[i] <= half; j++ {
			pairs = append(pairs, records.Pair{Left: rows[i].id, Right: rows[j].id})
		}
	}
	return pairs, nil
}

type mergedRow struct {
	id    string
	key   string
	right bool
}

// Linkage produces candidate pairs across two tables. Both sides are sorted
// by their respective keys and merged; a left and a right record become a
// candidate when their merged key ranks lie within (window-1)/2 of each
// other, so identical keys always pair across sides. A window of 1 pairs only
// records with identical keys.
func Linkage(left, right *records.Table, leftKey, rightKey string, window int) ([]records.Pair, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}
	if left == nil || right == nil || left.Len() == 0 || right.Len() == 0 {
		return nil, nil
	}

	leftRows := sortedRows(left, leftKey)
	rightRows := sortedRows(right, rightKey)

	if window == 1 {
		return exactJoin(leftRows, rightRows), nil
	}

	merged := make([]mergedRow, 0, len(leftRows)+len(rightRows))
	li, ri := 0, 0
	for li < len(leftRows) || ri < len(rightRows) {
		takeLeft := ri >= len(rightRows) ||
			(li < len(leftRows) && leftRows[li].key <= rightRows[ri].key)
		if takeLeft {
			merged = append(merged, mergedRow{id: leftRows[li].id, key: leftRows[li].key})
			li++
		} else {
			merged = append(merged, mergedRow{id: rightRows[ri].id, key: rightRows[ri].key, right: true})
			ri++
		}
	}

	keys := make([]string, len(merged))
	for i, row := range merged {
		keys[i] = row.key
	}
	ranks := keyRanks(keys)
	half := (window - 1) / 2

	var pairs []records.Pair
	for i := range merged {
		for j := i + 1; j < len(merged) && ranks[j]-ranks[i] <= half; j++ {
			if merged[i].right == merged[j].right {
				continue
			}
			if merged[i].right {
				pairs = append(pairs, records.Pair{Left: merged[j].id, Right: merged[i].id})
			} else {
				pairs = append(pairs, records.Pair{Left: merged[i].id, Right: merged[j].id})
			}
		}
	}
	return pairs, nil
}

// exactJoin pairs every left record with every right record sharing the same
// key, walking both sorted sides in lockstep.
func exactJoin(leftRows, rightRows []keyedRow) []records.Pair {
	var pairs []records.Pair
	li, ri := 0, 0
	for li < len(leftRows) && ri < len(rightRows) {
		switch {
		case leftRows[li].key < rightRows[ri].key:
			li++
		case leftRows[li].key > rightRows[ri].key:
			ri++
		default:
			key := leftRows[li].key
			lEnd := li
			for lEnd < len(leftRows) && leftRows[lEnd].key == key {
				lEnd++
			}
			rEnd := ri
			for rEnd < len(rightRows) && rightRows[rEnd].key == key {
				rEnd++
			}
			for i := li; i < lEnd; i++ {
				for j := ri; j < rEnd; j++ {
					pairs = append(pairs, records.Pair{Left: leftRows[i].id, Right: rightRows[j].id})
				}
			}
			li, ri = lEnd, rEnd
		}
	}
	return pairs
}
