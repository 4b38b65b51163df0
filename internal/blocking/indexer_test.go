package blocking

import (
	"errors"
	"testing"

	"lente/internal/errs"
	"lente/internal/records"
)

func table(t *testing.T, keys map[string]string) *records.Table {
	t.Helper()

	order := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	rows := make([]records.Row, 0, len(keys))
	for _, id := range order {
		key, ok := keys[id]
		if !ok {
			continue
		}
		rows = append(rows, records.Row{"id": records.String(id), "k": records.String(key)})
	}
	tbl, err := records.NewTable("id", rows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tbl
}

func pairSet(pairs []records.Pair) map[records.Pair]bool {
	out := make(map[records.Pair]bool, len(pairs))
	for _, p := range pairs {
		out[p] = true
	}
	return out
}

func TestDedupWindowOneIsExactBlocking(t *testing.T) {
	tbl := table(t, map[string]string{"1": "A", "2": "A", "3": "B"})

	pairs, err := Dedup(tbl, "k", 1)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected exactly one pair, got %v", pairs)
	}
	if pairs[0] != (records.Pair{Left: "1", Right: "2"}) {
		t.Fatalf("expected (1,2), got %v", pairs[0])
	}
}

func TestDedupEqualKeyRunPairsAllCombinations(t *testing.T) {
	tbl := table(t, map[string]string{"1": "A", "2": "A", "3": "A"})

	pairs, err := Dedup(tbl, "k", 1)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	got := pairSet(pairs)
	want := []records.Pair{
		{Left: "1", Right: "2"},
		{Left: "1", Right: "3"},
		{Left: "2", Right: "3"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestDedupWiderWindowUsesKeyRankDistance(t *testing.T) {
	// Distinct keys A, B, C, D. Window 3 pairs keys at rank distance 1 only.
	tbl := table(t, map[string]string{"1": "A", "2": "B", "3": "C", "4": "D"})

	pairs, err := Dedup(tbl, "k", 3)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	want := []records.Pair{
		{Left: "1", Right: "2"},
		{Left: "2", Right: "3"},
		{Left: "3", Right: "4"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	got := pairSet(pairs)
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestDedupWiderWindowKeepsEqualKeyRuns(t *testing.T) {
	// A run of equal keys longer than the half-window must still pair fully:
	// widening the window can only add candidates over exact blocking.
	tbl := table(t, map[string]string{"1": "A", "2": "A", "3": "A"})

	exact, err := Dedup(tbl, "k", 1)
	if err != nil {
		t.Fatalf("dedup window 1: %v", err)
	}
	wide, err := Dedup(tbl, "k", 3)
	if err != nil {
		t.Fatalf("dedup window 3: %v", err)
	}
	if len(wide) != len(exact) {
		t.Fatalf("expected %d pairs at window 3, got %v", len(exact), wide)
	}
	got := pairSet(wide)
	for _, p := range exact {
		if !got[p] {
			t.Fatalf("window 3 dropped exact-blocking pair %v: %v", p, wide)
		}
	}
}

func TestDedupWindowSpansEqualKeyRunIntoNeighbourKey(t *testing.T) {
	// Keys A, A, A, B: window 3 reaches one key rank away, so every A pairs
	// with every other A and with B.
	tbl := table(t, map[string]string{"1": "A", "2": "A", "3": "A", "4": "B"})

	pairs, err := Dedup(tbl, "k", 3)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	want := []records.Pair{
		{Left: "1", Right: "2"},
		{Left: "1", Right: "3"},
		{Left: "1", Right: "4"},
		{Left: "2", Right: "3"},
		{Left: "2", Right: "4"},
		{Left: "3", Right: "4"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	got := pairSet(pairs)
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestDedupSortTiesKeepRowOrder(t *testing.T) {
	// 2 and 1 share key A; the earlier row stays on the left.
	rows := []records.Row{
		{"id": records.String("2"), "k": records.String("A")},
		{"id": records.String("1"), "k": records.String("A")},
	}
	tbl, err := records.NewTable("id", rows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	pairs, err := Dedup(tbl, "k", 1)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	if len(pairs) != 1 || pairs[0] != (records.Pair{Left: "2", Right: "1"}) {
		t.Fatalf("expected (2,1), got %v", pairs)
	}
}

func TestDedupExcludesNullKeys(t *testing.T) {
	rows := []records.Row{
		{"id": records.String("1"), "k": records.String("A")},
		{"id": records.String("2"), "k": records.Null()},
		{"id": records.String("3"), "k": records.String("A")},
	}
	tbl, err := records.NewTable("id", rows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	pairs, err := Dedup(tbl, "k", 1)
	if err != nil {
		t.Fatalf("dedup: %v", err)
	}
	if len(pairs) != 1 || pairs[0] != (records.Pair{Left: "1", Right: "3"}) {
		t.Fatalf("null-keyed row should be skipped, got %v", pairs)
	}
}

func TestDedupRejectsEvenOrNonPositiveWindow(t *testing.T) {
	tbl := table(t, map[string]string{"1": "A"})
	for _, window := range []int{0, -1, 2, 4} {
		if _, err := Dedup(tbl, "k", window); !errors.Is(err, errs.ErrConfiguration) {
			t.Fatalf("window %d: expected configuration error, got %v", window, err)
		}
	}
}

func TestDedupEmptyTableYieldsNoPairs(t *testing.T) {
	pairs, err := Dedup(nil, "k", 1)
	if err != nil || pairs != nil {
		t.Fatalf("expected nil, nil; got %v, %v", pairs, err)
	}
}

func TestLinkageExactJoin(t *testing.T) {
	left := table(t, map[string]string{"1": "A", "2": "B"})
	rightRows := []records.Row{
		{"id": records.String("r1"), "k": records.String("A")},
		{"id": records.String("r2"), "k": records.String("A")},
		{"id": records.String("r3"), "k": records.String("C")},
	}
	right, err := records.NewTable("id", rightRows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	pairs, err := Linkage(left, right, "k", "k", 1)
	if err != nil {
		t.Fatalf("linkage: %v", err)
	}
	got := pairSet(pairs)
	want := []records.Pair{
		{Left: "1", Right: "r1"},
		{Left: "1", Right: "r2"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestLinkageWindowPairsAcrossSidesOnly(t *testing.T) {
	left := table(t, map[string]string{"1": "A", "2": "C"})
	rightRows := []records.Row{
		{"id": records.String("r1"), "k": records.String("B")},
	}
	right, err := records.NewTable("id", rightRows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	// Merged order: A(left), B(right), C(left). Window 3 pairs adjacent
	// entries; same-side neighbours are never candidates.
	pairs, err := Linkage(left, right, "k", "k", 3)
	if err != nil {
		t.Fatalf("linkage: %v", err)
	}
	got := pairSet(pairs)
	want := []records.Pair{
		{Left: "1", Right: "r1"},
		{Left: "2", Right: "r1"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestLinkageWiderWindowKeepsEqualKeyMatches(t *testing.T) {
	// Two left records share key A with one right record. At window 3 both
	// must pair with it, not just the merged neighbour.
	left := table(t, map[string]string{"1": "A", "2": "A"})
	rightRows := []records.Row{{"id": records.String("r1"), "k": records.String("A")}}
	right, err := records.NewTable("id", rightRows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	pairs, err := Linkage(left, right, "k", "k", 3)
	if err != nil {
		t.Fatalf("linkage: %v", err)
	}
	got := pairSet(pairs)
	want := []records.Pair{
		{Left: "1", Right: "r1"},
		{Left: "2", Right: "r1"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %v", len(want), pairs)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing pair %v in %v", p, pairs)
		}
	}
}

func TestLinkageLeftSortsBeforeRightOnEqualKeys(t *testing.T) {
	left := table(t, map[string]string{"1": "A"})
	rightRows := []records.Row{{"id": records.String("r1"), "k": records.String("A")}}
	right, err := records.NewTable("id", rightRows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	pairs, err := Linkage(left, right, "k", "k", 3)
	if err != nil {
		t.Fatalf("linkage: %v", err)
	}
	if len(pairs) != 1 || pairs[0] != (records.Pair{Left: "1", Right: "r1"}) {
		t.Fatalf("expected (1,r1), got %v", pairs)
	}
}

func TestLinkageEmptySideYieldsNoPairs(t *testing.T) {
	left := table(t, map[string]string{"1": "A"})
	pairs, err := Linkage(left, nil, "k", "k", 1)
	if err != nil || pairs != nil {
		t.Fatalf("expected nil, nil; got %v, %v", pairs, err)
	}
}
