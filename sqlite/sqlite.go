// Package sqlite stores corpora in a SQLite database so the search server
// can read while a build writes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fwojciec/docindex"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// migrations are applied in order. The number applied is kept in
// PRAGMA user_version, so entries must only ever be appended.
var migrations = []string{
	// Items of the persisted corpus and of the build snapshot share one
	// table, told apart by collection.
	`CREATE TABLE items (
		collection TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		source TEXT NOT NULL,
		path TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT '',
		embedding BLOB,
		PRIMARY KEY (collection, position)
	);
	CREATE INDEX idx_items_source ON items(collection, source);
	CREATE TABLE collections (
		name TEXT PRIMARY KEY,
		item_count INTEGER NOT NULL,
		saved_at TEXT NOT NULL
	);`,
}

// DB is a SQLite database holding docindex collections.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database and brings its schema up to date.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return docindex.WrapError(docindex.EINTERNAL, err, "open %s", db.path)
	}
	// One writer at a time.
	conn.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	// WAL is unavailable for in-memory databases.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return docindex.WrapError(docindex.EINTERNAL, err, "open %s", db.path)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return err
	}
	db.db = conn
	return nil
}

// SchemaVersion reports how many migrations have been applied.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return docindex.WrapError(docindex.EINTERNAL, err, "read schema version")
	}
	if version > len(migrations) {
		return docindex.Errorf(docindex.EINVALID, "database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		tx, err := conn.Begin()
		if err != nil {
			return docindex.WrapError(docindex.EINTERNAL, err, "migrate")
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return docindex.WrapError(docindex.EINTERNAL, err, "migration %d", i+1)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return docindex.WrapError(docindex.EINTERNAL, err, "migration %d", i+1)
		}
		if err := tx.Commit(); err != nil {
			return docindex.WrapError(docindex.EINTERNAL, err, "migration %d", i+1)
		}
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}
