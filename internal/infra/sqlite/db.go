// Package sqlite persists allocation revisions behind a pure-Go SQLite
// driver. The store is single-writer (SQLite's own constraint): one
// connection, WAL mode. Because the pool holds a single connection, reads
// and writes through one DB are serialized.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a single SQLite connection pool sized for SQLite's own
// single-writer constraint.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path, enables
// WAL mode, and runs the idempotent migration set.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enable wal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates every table the store needs if it doesn't already exist.
// Safe to call repeatedly against the same database file.
func (db *DB) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS revisions (
			revision_id TEXT PRIMARY KEY,
			project_id  TEXT NOT NULL,
			input_hash  TEXT NOT NULL,
			created_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_input_hash ON revisions (input_hash)`,
		`CREATE TABLE IF NOT EXISTS panels (
			revision_id TEXT NOT NULL REFERENCES revisions(revision_id),
			rack_id     TEXT NOT NULL,
			u           INTEGER NOT NULL,
			slots_per_u INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS modules (
			revision_id      TEXT NOT NULL REFERENCES revisions(revision_id),
			rack_id          TEXT NOT NULL,
			panel_u          INTEGER NOT NULL,
			slot             INTEGER NOT NULL,
			module_type      TEXT NOT NULL,
			fiber_kind       TEXT NOT NULL DEFAULT '',
			polarity_variant TEXT NOT NULL DEFAULT '',
			peer_rack_id     TEXT NOT NULL DEFAULT '',
			dedicated        INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cables (
			revision_id   TEXT NOT NULL REFERENCES revisions(revision_id),
			cable_id      TEXT NOT NULL,
			cable_type    TEXT NOT NULL,
			fiber_kind    TEXT NOT NULL DEFAULT '',
			polarity_type TEXT NOT NULL DEFAULT '',
			src_rack      TEXT NOT NULL,
			dst_rack      TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cables_revision ON cables (revision_id, cable_id)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			revision_id  TEXT NOT NULL REFERENCES revisions(revision_id),
			session_id   TEXT NOT NULL,
			media        TEXT NOT NULL,
			cable_id     TEXT NOT NULL,
			adapter_type TEXT NOT NULL,
			label_a      TEXT NOT NULL,
			label_b      TEXT NOT NULL,
			src_rack     TEXT NOT NULL,
			src_u        INTEGER NOT NULL,
			src_slot     INTEGER NOT NULL,
			src_port     INTEGER NOT NULL,
			dst_rack     TEXT NOT NULL,
			dst_u        INTEGER NOT NULL,
			dst_slot     INTEGER NOT NULL,
			dst_port     INTEGER NOT NULL,
			fiber_a      INTEGER,
			fiber_b      INTEGER,
			notes        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_revision ON sessions (revision_id, session_id)`,
	}
	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}
