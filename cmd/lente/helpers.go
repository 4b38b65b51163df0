package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"lente/internal/compare"
	"lente/internal/config"
	"lente/internal/records"
	"lente/internal/standardize"
	"lente/internal/warehouse"
)

// loadPersonCSV reads a person source file into a raw record table plus the
// warehouse rows for the same records. The first line must be a header naming
// an "id" column; empty cells become null values.
func loadPersonCSV(path string) (*records.Table, []warehouse.Person, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open source %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse source %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("source %s is empty", path)
	}

	header := make([]string, len(lines[0]))
	for i, name := range lines[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
	}

	source := filepath.Base(path)
	rows := make([]records.Row, 0, len(lines)-1)
	persons := make([]warehouse.Person, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row := records.Row{}
		person := warehouse.Person{Source: source}
		for i, cell := range line {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				row[header[i]] = records.Null()
				continue
			}
			row[header[i]] = records.String(cell)
			fillPersonField(&person, header[i], cell)
		}
		rows = append(rows, row)
		persons = append(persons, person)
	}

	table, err := records.NewTable("id", rows)
	if err != nil {
		return nil, nil, err
	}
	return table, persons, nil
}

func fillPersonField(person *warehouse.Person, field, value string) {
	switch field {
	case "id":
		person.ID = value
	case "name":
		person.Name = value
	case "birth_date":
		if parsed, ok := parseDate(value); ok {
			person.BirthDate = &parsed
		}
	case "notified_at":
		if parsed, ok := parseDate(value); ok {
			person.NotifiedAt = &parsed
		}
	case "sex":
		person.Sex = value
	case "mother_name":
		person.MotherName = value
	case "neighborhood":
		person.Neighborhood = value
	case "municipality":
		person.Municipality = value
	case "postal_code":
		person.PostalCode = value
	case "health_card":
		person.HealthCard = value
	case "tax_id":
		person.TaxID = value
	}
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// buildRules assembles the standard person comparison rule set: exact match
// on the birth date components, string similarity on the name splits.
func buildRules(cfg *config.Config) (compare.RuleSet, error) {
	algorithm, err := compare.ParseAlgorithm(cfg.Matching.StringAlgorithm)
	if err != nil {
		return compare.RuleSet{}, err
	}
	str := func(field string) compare.Rule {
		rule := compare.String(field, field, field)
		rule.Algorithm = algorithm
		return rule
	}
	return compare.NewRuleSet(
		compare.Exact(standardize.FieldBirthDay, standardize.FieldBirthDay, standardize.FieldBirthDay),
		compare.Exact(standardize.FieldBirthMonth, standardize.FieldBirthMonth, standardize.FieldBirthMonth),
		compare.Exact(standardize.FieldBirthYear, standardize.FieldBirthYear, standardize.FieldBirthYear),
		str(standardize.FieldFirstName),
		str(standardize.FieldNameRest),
		str(standardize.FieldMotherFirstName),
		str(standardize.FieldMotherNameRest),
	)
}

// aggregateScores computes one summary score per matrix row: the mean of the
// computed rule columns, skipping not-computed sentinels and merged rank
// columns.
func aggregateScores(matrix *compare.Matrix, ruleLabels []string) []float64 {
	columns := make(map[string]bool, len(ruleLabels))
	for _, label := range ruleLabels {
		columns[label] = true
	}
	labels := matrix.Labels()

	out := make([]float64, matrix.Len())
	for i := 0; i < matrix.Len(); i++ {
		row := matrix.Row(i)
		sum, n := 0.0, 0
		for j, label := range labels {
			if !columns[label] || compare.IsMissing(row[j]) {
				continue
			}
			sum += row[j]
			n++
		}
		if n > 0 {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// sortRows orders table rows by their first cell for stable display.
func sortRows(rows [][]string) {
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
}

// splitByScore partitions matrix pairs by aggregate score against the two
// caller-supplied cutoffs.
func splitByScore(matrix *compare.Matrix, ruleLabels []string, positive, potential float64) (pos, pot, neg []records.Pair) {
	scores := aggregateScores(matrix, ruleLabels)
	for i, score := range scores {
		pair := matrix.PairAt(i)
		switch {
		case score >= positive:
			pos = append(pos, pair)
		case score >= potential:
			pot = append(pot, pair)
		default:
			neg = append(neg, pair)
		}
	}
	return pos, pot, neg
}
