package records

import (
	"fmt"

	"lente/internal/errs"
)

// Row is a mapping of field names to values used to build tables. Rows are
// copied on construction; callers may reuse the map afterwards.
type Row map[string]Value

// Table is an immutable, ordered record set indexed by a unique identifier.
type Table struct {
	idField string
	ids     []string
	index   map[string]int
	rows    []map[string]Value
	fields  []string
}

// NewTable builds a table from rows in input order. Every row must carry a
// non-empty string value in idField, unique within the table.
func NewTable(idField string, rows []Row) (*Table, error) {
	if idField == "" {
		return nil, errs.Wrap(errs.ErrConfiguration, "records", "new table", "unique identifier field is required", nil)
	}

	t := &Table{
		idField: idField,
		ids:     make([]string, 0, len(rows)),
		index:   make(map[string]int, len(rows)),
		rows:    make([]map[string]Value, 0, len(rows)),
	}

	fieldSeen := make(map[string]struct{})
	for i, row := range rows {
		idValue, ok := row[idField]
		if !ok || idValue.Kind() != KindString {
			return nil, errs.Wrap(errs.ErrConfiguration, "records", "new table",
				fmt.Sprintf("row %d is missing identifier field %q", i, idField), nil)
		}
		id := idValue.Text()
		if _, dup := t.index[id]; dup {
			return nil, errs.Wrap(errs.ErrConfiguration, "records", "new table",
				fmt.Sprintf("duplicate identifier %q", id), nil)
		}

		copied := make(map[string]Value, len(row))
		for name, value := range row {
			copied[name] = value
			if _, seen := fieldSeen[name]; !seen {
				fieldSeen[name] = struct{}{}
				t.fields = append(t.fields, name)
			}
		}

		t.index[id] = len(t.ids)
		t.ids = append(t.ids, id)
		t.rows = append(t.rows, copied)
	}
	return t, nil
}

// IDField returns the name of the unique identifier field.
func (t *Table) IDField() string { return t.idField }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns the identifiers in original row order.
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Has reports whether an identifier exists in the table.
func (t *Table) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// IDAt returns the identifier at a row position.
func (t *Table) IDAt(i int) string { return t.ids[i] }

// Field returns the named value for an identifier. Unknown identifiers and
// unknown fields both yield the absent value.
func (t *Table) Field(id, name string) Value {
	i, ok := t.index[id]
	if !ok {
		return Null()
	}
	value, ok := t.rows[i][name]
	if !ok {
		return Null()
	}
	return value
}

// FieldAt returns the named value at a row position.
func (t *Table) FieldAt(i int, name string) Value {
	value, ok := t.rows[i][name]
	if !ok {
		return Null()
	}
	return value
}

// Fields returns the field names in first-seen order.
func (t *Table) Fields() []string {
	out := make([]string, len(t.fields))
	copy(out, t.fields)
	return out
}

// HasField reports whether any row carries the named field.
func (t *Table) HasField(name string) bool {
	for _, f := range t.fields {
		if f == name {
			return true
		}
	}
	return false
}

// Snapshot renders the selected fields of a record as a JSON-friendly map for
// annotation payloads. When fields is empty, every field is included.
func (t *Table) Snapshot(id string, fields []string) map[string]any {
	i, ok := t.index[id]
	if !ok {
		return nil
	}
	if len(fields) == 0 {
		fields = t.fields
	}
	out := make(map[string]any, len(fields))
	for _, name := range fields {
		value, ok := t.rows[i][name]
		if !ok {
			out[name] = nil
			continue
		}
		out[name] = value.Export()
	}
	return out
}
