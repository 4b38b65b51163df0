package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lente/internal/errs"
)

// DefaultInsertBatchSize bounds rows per insert transaction.
const DefaultInsertBatchSize = 200

// Store manages warehouse persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the warehouse database and applies the
// schema. The parent directory must exist or be creatable.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.Wrap(errs.ErrResource, "warehouse", "open", "create warehouse directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStorage, "warehouse", "open", "open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errs.Wrap(errs.ErrStorage, "warehouse", "open", fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{db: db, path: path, logger: logger.With(slog.String("component", "warehouse"))}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.ErrStorage, "warehouse", "open", "migrate schema", err)
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// InsertPersons stores records in batches, skipping identifiers already
// present. The duplicate-ID history check is best effort: when it fails the
// failure is logged and every row is inserted with ON CONFLICT ignore
// semantics instead.
func (s *Store) InsertPersons(ctx context.Context, persons []Person, batchSize int) (int, error) {
	if len(persons) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}

	fresh := persons
	known, err := s.existingIDs(ctx, personIDs(persons))
	if err != nil {
		s.logger.Warn("duplicate-ID history check failed; inserting with conflict skip", slog.Any("error", err))
	} else if len(known) > 0 {
		fresh = make([]Person, 0, len(persons))
		for _, person := range persons {
			if _, dup := known[person.ID]; dup {
				continue
			}
			fresh = append(fresh, person)
		}
	}

	inserted := 0
	for start := 0; start < len(fresh); start += batchSize {
		end := start + batchSize
		if end > len(fresh) {
			end = len(fresh)
		}
		n, err := s.insertPersonBatch(ctx, fresh[start:end])
		if err != nil {
			return inserted, errs.Wrap(errs.ErrStorage, "warehouse", "insert persons", "insert batch", err)
		}
		inserted += n
	}
	return inserted, nil
}

func (s *Store) insertPersonBatch(ctx context.Context, batch []Person) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO person (
        id, notified_at, name, birth_date, sex, mother_name,
        neighborhood, municipality, postal_code, health_card, tax_id,
        source, created_at, updated_at
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, person := range batch {
		res, err := stmt.ExecContext(ctx,
			person.ID,
			nullableTime(person.NotifiedAt),
			nullableString(person.Name),
			nullableTime(person.BirthDate),
			nullableString(person.Sex),
			nullableString(person.MotherName),
			nullableString(person.Neighborhood),
			nullableString(person.Municipality),
			nullableString(person.PostalCode),
			nullableString(person.HealthCard),
			nullableString(person.TaxID),
			person.Source,
			now,
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("insert person %q: %w", person.ID, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			inserted += int(affected)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// existingIDs returns which of the given identifiers are already stored.
func (s *Store) existingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	known := make(map[string]struct{})
	const chunk = 500
	for start := 0; start < len(ids); start += chunk {
		end := start + chunk
		if end > len(ids) {
			end = len(ids)
		}
		subset := ids[start:end]

		args := make([]any, len(subset))
		for i, id := range subset {
			args[i] = id
		}
		query := `SELECT id FROM person WHERE id IN (` + makePlaceholders(len(subset)) + `)`
		rows, err := s.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("query existing ids: %w", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, err
			}
			known[id] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return known, nil
}

// IDsByYear returns the identifiers of records notified in the given year.
func (s *Store) IDsByYear(ctx context.Context, year int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM person WHERE notified_at >= ? AND notified_at < ? ORDER BY id`,
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-01-01", year+1),
	)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStorage, "warehouse", "ids by year", "query", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountPersons returns the number of stored person records.
func (s *Store) CountPersons(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM person`).Scan(&count); err != nil {
		return 0, errs.Wrap(errs.ErrStorage, "warehouse", "count persons", "query", err)
	}
	return count, nil
}

// SavePairLabels upserts reviewed pair classifications.
func (s *Store) SavePairLabels(ctx context.Context, labels []PairLabel) error {
	if len(labels) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.Wrap(errs.ErrStorage, "warehouse", "save pair labels", "begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO pair_label (
        pair_id, left_id, right_id, classification, created_at
    ) VALUES (?, ?, ?, ?, ?)
    ON CONFLICT(pair_id) DO UPDATE SET classification = excluded.classification`)
	if err != nil {
		return errs.Wrap(errs.ErrStorage, "warehouse", "save pair labels", "prepare", err)
	}
	defer stmt.Close()

	for _, label := range labels {
		if _, err := stmt.ExecContext(ctx, label.PairID(), label.LeftID, label.RightID, label.Classification, now); err != nil {
			return errs.Wrap(errs.ErrStorage, "warehouse", "save pair labels",
				fmt.Sprintf("insert pair %s", label.PairID()), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errs.Wrap(errs.ErrStorage, "warehouse", "save pair labels", "commit", err)
	}
	return nil
}

// PairLabels returns every stored pair classification ordered by pair id.
func (s *Store) PairLabels(ctx context.Context) ([]PairLabel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT left_id, right_id, classification, created_at FROM pair_label ORDER BY pair_id`)
	if err != nil {
		return nil, errs.Wrap(errs.ErrStorage, "warehouse", "pair labels", "query", err)
	}
	defer rows.Close()

	var labels []PairLabel
	for rows.Next() {
		var label PairLabel
		var createdRaw string
		if err := rows.Scan(&label.LeftID, &label.RightID, &label.Classification, &createdRaw); err != nil {
			return nil, err
		}
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			label.CreatedAt = created
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func personIDs(persons []Person) []string {
	ids := make([]string, len(persons))
	for i, person := range persons {
		ids[i] = person.ID
	}
	return ids
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
