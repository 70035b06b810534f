package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/docindex"
)

var _ docindex.CorpusStore = (*CorpusStore)(nil)

const (
	corpusCollection   = "corpus"
	snapshotCollection = "snapshot"
)

// CorpusStore implements docindex.CorpusStore on SQLite. Each save replaces
// a whole collection inside one transaction, so readers see either the old
// or the new corpus.
type CorpusStore struct {
	db *DB
}

// NewCorpusStore creates a new CorpusStore.
func NewCorpusStore(db *DB) *CorpusStore {
	return &CorpusStore{db: db}
}

// Load reads the persisted corpus in saved order.
// Returns ENOTFOUND if no corpus has been saved yet.
func (s *CorpusStore) Load(ctx context.Context) ([]*docindex.Item, error) {
	return s.load(ctx, corpusCollection)
}

// Save atomically replaces the persisted corpus.
func (s *CorpusStore) Save(ctx context.Context, items []*docindex.Item) error {
	return s.replace(ctx, corpusCollection, items)
}

// SaveSnapshot atomically replaces the build snapshot.
func (s *CorpusStore) SaveSnapshot(ctx context.Context, items []*docindex.Item) error {
	return s.replace(ctx, snapshotCollection, items)
}

// RemoveSnapshot deletes the build snapshot, if any.
func (s *CorpusStore) RemoveSnapshot(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE collection = ?`, snapshotCollection); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, snapshotCollection); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSnapshot reads the last build snapshot.
// Returns ENOTFOUND if no snapshot has been saved.
func (s *CorpusStore) LoadSnapshot(ctx context.Context) ([]*docindex.Item, error) {
	return s.load(ctx, snapshotCollection)
}

// SavedAt returns when the corpus was last saved.
// Returns ENOTFOUND if no corpus has been saved yet.
func (s *CorpusStore) SavedAt(ctx context.Context) (time.Time, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM collections WHERE name = ?`, corpusCollection).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, docindex.Errorf(docindex.ENOTFOUND, "corpus not found")
	}
	if err != nil {
		return time.Time{}, err
	}
	return parseRFC3339(savedAt, "saved_at")
}

func (s *CorpusStore) load(ctx context.Context, collection string) ([]*docindex.Item, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT item_count FROM collections WHERE name = ?`, collection).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "%s not found", collection)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, source, path, embedding
		FROM items
		WHERE collection = ?
		ORDER BY position
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*docindex.Item, 0, count)
	for rows.Next() {
		var item docindex.Item
		var blob []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Source, &item.Path, &blob); err != nil {
			return nil, err
		}
		if item.Embedding, err = decodeVector(blob); err != nil {
			return nil, docindex.WrapError(docindex.EINVALID, err, "corrupt embedding for item %s", item.ID)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CorpusStore) replace(ctx context.Context, collection string, items []*docindex.Item) (err error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM items WHERE collection = ?`, collection); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (collection, position, id, title, content, source, path, content_hash, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		if _, err = stmt.ExecContext(ctx, collection, i, item.ID, item.Title, item.Content,
			string(item.Source), item.Path, hashContent(item.Content), encodeVector(item.Embedding)); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO collections (name, item_count, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET item_count = excluded.item_count, saved_at = excluded.saved_at
	`, collection, len(items), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit()
}
