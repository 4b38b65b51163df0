package standardize

import (
	"fmt"
	"time"

	"lente/internal/errs"
	"lente/internal/records"
)

// Source field names expected on raw tables and the derived field names the
// matching configuration refers to.
const (
	FieldName       = "name"
	FieldBirthDate  = "birth_date"
	FieldMotherName = "mother_name"

	FieldFirstName       = "first_name"
	FieldNameRest        = "name_rest"
	FieldMotherFirstName = "mother_first_name"
	FieldMotherNameRest  = "mother_name_rest"
	FieldBirthDay        = "birth_day"
	FieldBirthMonth      = "birth_month"
	FieldBirthYear       = "birth_year"
	FieldBlockKey        = "block_key"
	FieldFirstNameRank   = "first_name_rank"
	FieldMotherRank      = "mother_first_name_rank"
)

var essentialFields = []string{FieldName, FieldBirthDate, FieldMotherName}

// parseDateValue resolves a birth date whether the source carried it as a
// date value or a textual ISO / Brazilian-style date.
func parseDateValue(value records.Value) (time.Time, bool) {
	if date, ok := value.Date(); ok {
		return date, true
	}
	text := value.Text()
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Table derives the standardized matching table from a raw person table. The
// raw table must carry the essential fields (name, birth_date, mother_name);
// their absence is a configuration error raised before any row is processed.
// Extra raw fields are carried through untouched.
func Table(raw *records.Table) (*records.Table, error) {
	if raw == nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "standardize", "table", "raw record table is required", nil)
	}
	for _, field := range essentialFields {
		if !raw.HasField(field) {
			return nil, errs.Wrap(errs.ErrConfiguration, "standardize", "table",
				fmt.Sprintf("essential field %q is missing from the source", field), nil)
		}
	}

	total := raw.Len()
	firstNames := make([]string, total)
	motherFirstNames := make([]string, total)
	for i := 0; i < total; i++ {
		firstNames[i] = FirstName(NormalizeName(raw.FieldAt(i, FieldName).Text()))
		motherFirstNames[i] = FirstName(NormalizeName(raw.FieldAt(i, FieldMotherName).Text()))
	}
	firstRanks := nameRanks(firstNames, total)
	motherRanks := nameRanks(motherFirstNames, total)

	rows := make([]records.Row, 0, total)
	for i := 0; i < total; i++ {
		row := records.Row{}
		for _, field := range raw.Fields() {
			row[field] = raw.FieldAt(i, field)
		}

		name := NormalizeName(raw.FieldAt(i, FieldName).Text())
		motherName := NormalizeName(raw.FieldAt(i, FieldMotherName).Text())
		row[FieldName] = records.String(name)
		row[FieldMotherName] = records.String(motherName)
		row[FieldFirstName] = records.String(FirstName(name))
		row[FieldNameRest] = records.String(RestOfName(name))
		row[FieldMotherFirstName] = records.String(FirstName(motherName))
		row[FieldMotherNameRest] = records.String(RestOfName(motherName))
		row[FieldBlockKey] = records.String(BlockKey(name))

		if birth, ok := parseDateValue(raw.FieldAt(i, FieldBirthDate)); ok {
			row[FieldBirthDay] = records.Number(float64(birth.Day()))
			row[FieldBirthMonth] = records.Number(float64(birth.Month()))
			row[FieldBirthYear] = records.Number(float64(birth.Year()))
		} else {
			row[FieldBirthDay] = records.Null()
			row[FieldBirthMonth] = records.Null()
			row[FieldBirthYear] = records.Null()
		}

		if rank, ok := firstRanks[firstNames[i]]; ok {
			row[FieldFirstNameRank] = records.Number(rank)
		} else {
			row[FieldFirstNameRank] = records.Null()
		}
		if rank, ok := motherRanks[motherFirstNames[i]]; ok {
			row[FieldMotherRank] = records.Number(rank)
		} else {
			row[FieldMotherRank] = records.Null()
		}

		rows = append(rows, row)
	}
	return records.NewTable(raw.IDField(), rows)
}
