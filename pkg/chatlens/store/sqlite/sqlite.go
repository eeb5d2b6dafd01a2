package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/chatlens/pkg/chatlens/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS messages (
	source TEXT NOT NULL,
	seq INTEGER NOT NULL,
	role TEXT NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY(source, seq)
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	source TEXT,
	args TEXT,
	report TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveMessages replaces the stored corpus for a source.
func (s *sqliteStore) SaveMessages(ctx context.Context, source string, messages []store.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE source = ?", source); err != nil {
		return err
	}
	for i, msg := range messages {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO messages(source, seq, role, text) VALUES(?, ?, ?, ?)",
			source, i, msg.Role, msg.Text); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetMessages returns the stored corpus for a source in sequence order.
func (s *sqliteStore) GetMessages(ctx context.Context, source string) ([]store.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, text FROM messages WHERE source = ? ORDER BY seq", source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []store.Message
	for rows.Next() {
		var m store.Message
		if err := rows.Scan(&m.Role, &m.Text); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// SaveRun inserts or updates a run record.
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run) error {
	args, err := json.Marshal(run.Args)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs(id, created_at, source, args, report) VALUES(?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET created_at=excluded.created_at,
	source=excluded.source, args=excluded.args, report=excluded.report`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), run.Source, string(args), run.ReportJSON)
	return err
}

// GetRun returns a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, created_at, source, args, report FROM runs WHERE id = ?", id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, source, args, report FROM runs ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var run store.Run
	var createdAt, args string
	if err := row.Scan(&run.ID, &createdAt, &run.Source, &args, &run.ReportJSON); err != nil {
		return store.Run{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		run.CreatedAt = ts
	}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &run.Args); err != nil {
			return store.Run{}, err
		}
	}
	return run, nil
}
