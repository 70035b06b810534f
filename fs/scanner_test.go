package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files relative to root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// echoExtractor returns a page for every file, using the markup as content.
var echoExtractor = &mock.PageExtractor{
	ExtractFn: func(markup, locator string) (*docindex.Page, error) {
		return &docindex.Page{Locator: locator, Title: locator, Content: markup}, nil
	},
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("visits html files breadth first with relative locators", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"index.html":                   "root",
			"modeling/index.html":          "modeling",
			"modeling/meshes/editing.html": "editing",
			"animation/keyframes.html":     "keyframes",
			"notes.txt":                    "ignored",
			"_static/theme.html":           "ignored",
			"_sources/index.html":          "ignored",
			"genindex.html":                "ignored",
			"search.html":                  "ignored",
		})

		var locators []string
		s := &fs.Scanner{Root: root, Extractor: echoExtractor}
		result, err := s.Scan(context.Background(), func(_ context.Context, page *docindex.Page) error {
			locators = append(locators, page.Locator)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"index.html",
			"animation/keyframes.html",
			"modeling/index.html",
			"modeling/meshes/editing.html",
		}, locators)
		assert.Equal(t, 4, result.Processed)
		assert.Equal(t, 4, result.Extracted)
	})

	t.Run("stops at max pages", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"a.html":     "a",
			"b.html":     "b",
			"sub/c.html": "c",
			"sub/d.html": "d",
		})

		var count int
		s := &fs.Scanner{Root: root, Extractor: echoExtractor, MaxPages: 3}
		result, err := s.Scan(context.Background(), func(context.Context, *docindex.Page) error {
			count++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Processed)
		assert.Equal(t, 3, count)
	})

	t.Run("counts skipped and failed files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"good.html":  "good",
			"short.html": "short",
			"bad.html":   "bad",
		})

		var failed []string
		s := &fs.Scanner{
			Root: root,
			Extractor: &mock.PageExtractor{ExtractFn: func(markup, locator string) (*docindex.Page, error) {
				switch markup {
				case "short":
					return nil, nil
				case "bad":
					return nil, errors.New("unparsable")
				}
				return &docindex.Page{Locator: locator, Content: markup}, nil
			}},
			OnError: func(locator string, _ error) { failed = append(failed, locator) },
		}
		result, err := s.Scan(context.Background(), func(context.Context, *docindex.Page) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, &fs.ScanResult{Processed: 3, Extracted: 1, Skipped: 1, Failed: 1}, result)
		assert.Equal(t, []string{"bad.html"}, failed)
	})

	t.Run("applies exclude patterns to relative paths", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{
			"modeling/a.html":    "a",
			"about/license.html": "license",
		})
		exclude, err := docindex.NewURLFilter(`^about/`)
		require.NoError(t, err)

		var locators []string
		s := &fs.Scanner{Root: root, Extractor: echoExtractor, Exclude: exclude}
		_, err = s.Scan(context.Background(), func(_ context.Context, page *docindex.Page) error {
			locators = append(locators, page.Locator)
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"modeling/a.html"}, locators)
	})

	t.Run("missing root is not found", func(t *testing.T) {
		t.Parallel()

		s := &fs.Scanner{Root: filepath.Join(t.TempDir(), "missing"), Extractor: echoExtractor}
		_, err := s.Scan(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})

	t.Run("file root is invalid", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"a.html": "a"})

		s := &fs.Scanner{Root: filepath.Join(root, "a.html"), Extractor: echoExtractor}
		_, err := s.Scan(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("callback error stops the scan", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"a.html": "a", "b.html": "b"})
		boom := errors.New("boom")

		s := &fs.Scanner{Root: root, Extractor: echoExtractor}
		result, err := s.Scan(context.Background(), func(context.Context, *docindex.Page) error { return boom })

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, result.Processed)
	})
}
