package testsupport

import (
	"testing"

	"lente/internal/records"
)

// MustTable builds a record table and fails the test on error.
func MustTable(t testing.TB, idField string, rows []records.Row) *records.Table {
	t.Helper()

	table, err := records.NewTable(idField, rows)
	if err != nil {
		t.Fatalf("records.NewTable: %v", err)
	}
	return table
}

// PersonRow builds a raw person row with the essential matching fields.
func PersonRow(id, name, birthDate, motherName string) records.Row {
	row := records.Row{
		"id":   records.String(id),
		"name": records.String(name),
	}
	if birthDate != "" {
		row["birth_date"] = records.String(birthDate)
	} else {
		row["birth_date"] = records.Null()
	}
	if motherName != "" {
		row["mother_name"] = records.String(motherName)
	} else {
		row["mother_name"] = records.Null()
	}
	return row
}

// PersonTable builds a table of raw person rows keyed by "id".
func PersonTable(t testing.TB, rows ...records.Row) *records.Table {
	t.Helper()
	return MustTable(t, "id", rows)
}
