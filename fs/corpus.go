// Package fs provides file-based storage for the corpus and a scanner for
// local documentation trees.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docindex"
)

// Corpus file names inside the corpus directory.
const (
	CorpusFile   = "docs.json"
	SnapshotFile = "docs_temp.json"
)

var _ docindex.CorpusStore = (*CorpusStore)(nil)

// CorpusStore persists the corpus as a JSON array of items.
// Writes go to a temporary file in the same directory which is then renamed
// over the target, so readers never observe a partial file.
type CorpusStore struct {
	// Path is the corpus file.
	Path string

	// SnapshotPath receives interim snapshots of a build in progress.
	SnapshotPath string
}

// NewCorpusStore returns a store for the corpus files in dir.
func NewCorpusStore(dir string) *CorpusStore {
	return &CorpusStore{
		Path:         filepath.Join(dir, CorpusFile),
		SnapshotPath: filepath.Join(dir, SnapshotFile),
	}
}

// NewCorpusFile returns a store reading and writing the corpus at path,
// with snapshots kept next to it.
func NewCorpusFile(path string) *CorpusStore {
	return &CorpusStore{
		Path:         path,
		SnapshotPath: filepath.Join(filepath.Dir(path), SnapshotFile),
	}
}

// Load reads the corpus. Returns ENOTFOUND if the file does not exist.
func (s *CorpusStore) Load(ctx context.Context) ([]*docindex.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "corpus not found: %s", s.Path)
	} else if err != nil {
		return nil, err
	}

	var items []*docindex.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, docindex.WrapError(docindex.EINVALID, err, "corrupt corpus %s", s.Path)
	}
	return items, nil
}

// Save atomically replaces the corpus.
func (s *CorpusStore) Save(ctx context.Context, items []*docindex.Item) error {
	return writeJSON(ctx, s.Path, items)
}

// SaveSnapshot atomically replaces the snapshot file.
func (s *CorpusStore) SaveSnapshot(ctx context.Context, items []*docindex.Item) error {
	return writeJSON(ctx, s.SnapshotPath, items)
}

// RemoveSnapshot deletes the snapshot file, if any.
func (s *CorpusStore) RemoveSnapshot(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.SnapshotPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func writeJSON(ctx context.Context, path string, items []*docindex.Item) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []*docindex.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
