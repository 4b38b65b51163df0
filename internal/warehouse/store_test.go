package warehouse

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "warehouse.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testPerson(id string, notified *time.Time) Person {
	return Person{
		ID:         id,
		NotifiedAt: notified,
		Name:       "MARIA DA SILVA",
		BirthDate:  datePtr(1990, time.April, 12),
		MotherName: "ANA DA SILVA",
		Source:     "test.csv",
	}
}

func TestInsertPersonsAndCount(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	inserted, err := store.InsertPersons(ctx, []Person{
		testPerson("p1", datePtr(2023, time.January, 5)),
		testPerson("p2", datePtr(2023, time.June, 1)),
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	count, err := store.CountPersons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertPersonsSkipsKnownIDs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.InsertPersons(ctx, []Person{testPerson("p1", nil)}, 0)
	require.NoError(t, err)

	inserted, err := store.InsertPersons(ctx, []Person{
		testPerson("p1", nil),
		testPerson("p2", nil),
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	count, err := store.CountPersons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertPersonsBatches(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	persons := make([]Person, 7)
	for i := range persons {
		persons[i] = testPerson(string(rune('a'+i)), nil)
	}
	inserted, err := store.InsertPersons(ctx, persons, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, inserted)
}

func TestIDsByYear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.InsertPersons(ctx, []Person{
		testPerson("p1", datePtr(2022, time.December, 31)),
		testPerson("p2", datePtr(2023, time.January, 1)),
		testPerson("p3", datePtr(2023, time.November, 20)),
		testPerson("p4", nil),
	}, 0)
	require.NoError(t, err)

	ids, err := store.IDsByYear(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, ids)
}

func TestSavePairLabelsUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	labels := []PairLabel{
		{LeftID: "p1", RightID: "p2", Classification: "potential"},
		{LeftID: "p3", RightID: "p4", Classification: "positive"},
	}
	require.NoError(t, store.SavePairLabels(ctx, labels))

	// Re-saving the same pair with a new classification updates in place.
	require.NoError(t, store.SavePairLabels(ctx, []PairLabel{
		{LeftID: "p1", RightID: "p2", Classification: "positive"},
	}))

	stored, err := store.PairLabels(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "positive", stored[0].Classification)
	assert.Equal(t, "p1", stored[0].LeftID)
	assert.Equal(t, "p3", stored[1].LeftID)
}

func TestPairLabelPairID(t *testing.T) {
	label := PairLabel{LeftID: "a", RightID: "b"}
	assert.Equal(t, "a:b", label.PairID())
}
