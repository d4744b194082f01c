package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite persists audit entries in a local SQLite database and can
// read them back for the recent-audits listing.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the audit database with WAL
// mode enabled.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	schema := `
CREATE TABLE IF NOT EXISTS audit_entries (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	contract_type TEXT,
	language TEXT,
	trail TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Record(ctx context.Context, e Entry) error {
	trailJSON, err := json.Marshal(e.Trail)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO audit_entries (id, created_at, contract_type, language, trail)
VALUES (?, ?, ?, ?, ?);
`, e.ID, e.CreatedAt.UTC().Format(time.RFC3339), e.ContractType, e.Language, string(trailJSON))
	return err
}

// Recent returns the latest entries, newest first. ULID ids order by
// creation time, so the id index is the sort key.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, contract_type, language, trail
FROM audit_entries
ORDER BY id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                 Entry
			created, trailRaw string
		)
		if err := rows.Scan(&e.ID, &created, &e.ContractType, &e.Language, &trailRaw); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(time.RFC3339, created); perr == nil {
			e.CreatedAt = parsed
		}
		if err := json.Unmarshal([]byte(trailRaw), &e.Trail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
