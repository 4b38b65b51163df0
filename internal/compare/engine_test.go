package compare

import (
	"errors"
	"testing"

	"lente/internal/errs"
	"lente/internal/records"
)

func personTable(t *testing.T, rows ...records.Row) *records.Table {
	t.Helper()

	tbl, err := records.NewTable("id", rows)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return tbl
}

func mustRules(t *testing.T, rules ...Rule) RuleSet {
	t.Helper()

	rs, err := NewRuleSet(rules...)
	if err != nil {
		t.Fatalf("new rule set: %v", err)
	}
	return rs
}

func TestComputeExactRule(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "year": records.Number(1990)},
		records.Row{"id": records.String("2"), "year": records.Number(1990)},
		records.Row{"id": records.String("3"), "year": records.Number(1991)},
		records.Row{"id": records.String("4"), "year": records.Null()},
	)
	rules := mustRules(t, Exact("year", "year", "year"))

	pairs := []records.Pair{
		{Left: "1", Right: "2"},
		{Left: "1", Right: "3"},
		{Left: "4", Right: "4"},
	}
	matrix, err := Compute(pairs, tbl, nil, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := []float64{1.0, 0.0, 0.0}
	for i, expected := range want {
		if got, _ := matrix.Score(i, "year"); got != expected {
			t.Fatalf("row %d: expected %v, got %v", i, expected, got)
		}
	}
}

func TestComputeStringRuleNullSideScoresZero(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "name": records.String("MARIA")},
		records.Row{"id": records.String("2"), "name": records.Null()},
	)
	rules := mustRules(t, String("name", "name", "name"))

	matrix, err := Compute([]records.Pair{{Left: "1", Right: "2"}}, tbl, nil, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got, _ := matrix.Score(0, "name"); got != 0.0 {
		t.Fatalf("null side should score 0.0, got %v", got)
	}
}

func TestComputeStringRuleThresholdBinarizes(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "name": records.String("MARIA")},
		records.Row{"id": records.String("2"), "name": records.String("MARIO")},
		records.Row{"id": records.String("3"), "name": records.String("JOSE")},
	)
	rules := mustRules(t, StringWith("name", "name", "name", AlgorithmDamerauLevenshtein, 0.8))

	pairs := []records.Pair{{Left: "1", Right: "2"}, {Left: "1", Right: "3"}}
	matrix, err := Compute(pairs, tbl, nil, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got, _ := matrix.Score(0, "name"); got != 1.0 {
		t.Fatalf("MARIA/MARIO is one edit over five, expected 1.0, got %v", got)
	}
	if got, _ := matrix.Score(1, "name"); got != 0.0 {
		t.Fatalf("MARIA/JOSE is below the threshold, expected 0.0, got %v", got)
	}
}

func TestComputeReservedMethodsEmitMissing(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "age": records.Number(30)},
		records.Row{"id": records.String("2"), "age": records.Number(31)},
	)
	rules := mustRules(t, Numeric("age", "age", "age"), Date("age", "age", "age_date"))

	matrix, err := Compute([]records.Pair{{Left: "1", Right: "2"}}, tbl, nil, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for _, label := range []string{"age", "age_date"} {
		score, ok := matrix.Score(0, label)
		if !ok || !IsMissing(score) {
			t.Fatalf("column %q should hold the missing sentinel, got %v", label, score)
		}
	}
}

func TestComputeCensorsBelowThreshold(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "name": records.String("ABCDEFGHIJ")},
		records.Row{"id": records.String("2"), "name": records.String("ABCDEFGHIX")},
		records.Row{"id": records.String("3"), "name": records.String("ABCDXXXXXX")},
		records.Row{"id": records.String("4"), "name": records.String("XXXXXXXXXX")},
	)
	rules := mustRules(t, String("name", "name", "name"))

	pairs := []records.Pair{
		{Left: "1", Right: "2"}, // 0.9
		{Left: "1", Right: "3"}, // 0.4
		{Left: "1", Right: "4"}, // 0.0
	}
	matrix, err := Compute(pairs, tbl, nil, rules, Options{Threshold: 0.5, HasThreshold: true})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := []float64{0.9, 0.0, 0.0}
	for i, expected := range want {
		got, _ := matrix.Score(i, "name")
		if !almostEqual(got, expected) {
			t.Fatalf("row %d: expected %v, got %v", i, expected, got)
		}
	}
}

func TestComputeCensorIgnoresThresholdAboveOne(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "name": records.String("MARIA")},
		records.Row{"id": records.String("2"), "name": records.String("MARIO")},
	)
	rules := mustRules(t, String("name", "name", "name"))

	matrix, err := Compute([]records.Pair{{Left: "1", Right: "2"}}, tbl, nil, rules,
		Options{Threshold: 1.5, HasThreshold: true})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got, _ := matrix.Score(0, "name"); got == 0.0 {
		t.Fatal("threshold above 1.0 must not censor")
	}
}

func TestComputeCensorKeepsMissingSentinel(t *testing.T) {
	tbl := personTable(t,
		records.Row{"id": records.String("1"), "age": records.Number(30)},
		records.Row{"id": records.String("2"), "age": records.Number(31)},
	)
	rules := mustRules(t, Numeric("age", "age", "age"))

	matrix, err := Compute([]records.Pair{{Left: "1", Right: "2"}}, tbl, nil, rules,
		Options{Threshold: 0.5, HasThreshold: true})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if score, _ := matrix.Score(0, "age"); !IsMissing(score) {
		t.Fatalf("censoring must leave the sentinel untouched, got %v", score)
	}
}

type recordingProgress struct {
	calls [][3]int
}

func (r *recordingProgress) Batch(index, total, size int) {
	r.calls = append(r.calls, [3]int{index, total, size})
}

func TestComputeBatchingPreservesOrderAndReportsProgress(t *testing.T) {
	rows := make([]records.Row, 0, 5)
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		rows = append(rows, records.Row{"id": records.String(id), "name": records.String("N" + id)})
	}
	tbl := personTable(t, rows...)
	rules := mustRules(t, String("name", "name", "name"))

	pairs := []records.Pair{
		{Left: "1", Right: "2"},
		{Left: "2", Right: "3"},
		{Left: "3", Right: "4"},
		{Left: "4", Right: "5"},
		{Left: "1", Right: "5"},
	}
	progress := &recordingProgress{}
	matrix, err := Compute(pairs, tbl, nil, rules, Options{Batches: 2, Progress: progress})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	got := matrix.Pairs()
	for i := range pairs {
		if got[i] != pairs[i] {
			t.Fatalf("row %d out of order: %v != %v", i, got[i], pairs[i])
		}
	}
	if len(progress.calls) != 2 {
		t.Fatalf("expected 2 progress calls, got %v", progress.calls)
	}
	if progress.calls[0] != [3]int{1, 2, 3} || progress.calls[1] != [3]int{2, 2, 2} {
		t.Fatalf("unexpected progress calls: %v", progress.calls)
	}
}

func TestComputeAbortsOnUnknownIdentifier(t *testing.T) {
	tbl := personTable(t, records.Row{"id": records.String("1"), "name": records.String("A")})
	rules := mustRules(t, String("name", "name", "name"))

	_, err := Compute([]records.Pair{{Left: "1", Right: "ghost"}}, tbl, nil, rules, Options{})
	if !errors.Is(err, errs.ErrData) {
		t.Fatalf("expected data error, got %v", err)
	}
}

func TestComputeEmptyPairsYieldsEmptyMatrix(t *testing.T) {
	tbl := personTable(t, records.Row{"id": records.String("1"), "name": records.String("A")})
	rules := mustRules(t, String("name", "name", "name"))

	matrix, err := Compute(nil, tbl, nil, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if matrix.Len() != 0 {
		t.Fatalf("expected empty matrix, got %d rows", matrix.Len())
	}
	if len(matrix.Labels()) != 1 {
		t.Fatalf("labels should survive an empty pass, got %v", matrix.Labels())
	}
}

func TestComputeLinkageResolvesRightTable(t *testing.T) {
	left := personTable(t, records.Row{"id": records.String("l1"), "name": records.String("MARIA")})
	right := personTable(t, records.Row{"id": records.String("r1"), "name": records.String("MARIA")})
	rules := mustRules(t, String("name", "name", "name"))

	matrix, err := Compute([]records.Pair{{Left: "l1", Right: "r1"}}, left, right, rules, Options{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if got, _ := matrix.Score(0, "name"); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}
