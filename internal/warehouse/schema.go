package warehouse

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS person (
    id            TEXT PRIMARY KEY,
    notified_at   TEXT,
    name          TEXT,
    birth_date    TEXT,
    sex           TEXT,
    mother_name   TEXT,
    neighborhood  TEXT,
    municipality  TEXT,
    postal_code   TEXT,
    health_card   TEXT,
    tax_id        TEXT,
    source        TEXT NOT NULL,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_person_notified_at ON person (notified_at);

CREATE TABLE IF NOT EXISTS pair_label (
    pair_id        TEXT PRIMARY KEY,
    left_id        TEXT NOT NULL,
    right_id       TEXT NOT NULL,
    classification TEXT NOT NULL,
    created_at     TEXT NOT NULL
);
`

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
