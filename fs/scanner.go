package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/docindex"
)

// DefaultMaxPages caps the files handed to the extractor in one scan.
const DefaultMaxPages = 1000

// skippedPages are generated Sphinx pages that never carry documentation.
var skippedPages = []string{"genindex", "search", "404"}

// Scanner walks a local documentation tree, such as an unpacked HTML build
// of the Blender manual, and extracts every HTML page in it.
type Scanner struct {
	Root      string
	Extractor docindex.PageExtractor

	// MaxPages stops the scan after that many files were processed.
	MaxPages int

	// Exclude rejects files by their slash-separated path relative to Root.
	Exclude *docindex.URLFilter

	// OnError, if set, is told about files that could not be processed.
	OnError func(locator string, err error)
}

// ScanResult holds the outcome of a scan.
type ScanResult struct {
	Processed int
	Extracted int
	Skipped   int
	Failed    int
}

// Scan visits directories breadth-first in name order, skipping directories
// whose name starts with an underscore, and calls fn for each extracted page.
// The page locator is the file's path relative to Root.
//
// Returns ENOTFOUND if Root does not exist and EINVALID if it is not a
// readable directory. An error from fn stops the scan and is returned.
func (s *Scanner) Scan(ctx context.Context, fn func(ctx context.Context, page *docindex.Page) error) (*ScanResult, error) {
	info, err := os.Stat(s.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "documentation root not found: %s", s.Root)
	} else if err != nil {
		return nil, docindex.WrapError(docindex.EINVALID, err, "cannot read documentation root %s", s.Root)
	}
	if !info.IsDir() {
		return nil, docindex.Errorf(docindex.EINVALID, "documentation root is not a directory: %s", s.Root)
	}

	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	result := &ScanResult{}
	queue := []string{"."}
	for len(queue) > 0 && result.Processed < maxPages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(filepath.Join(s.Root, dir))
		if err != nil {
			if dir == "." {
				return nil, docindex.WrapError(docindex.EINVALID, err, "cannot read documentation root %s", s.Root)
			}
			s.fail(dir, err)
			result.Failed++
			continue
		}

		for _, entry := range entries {
			rel := path.Join(filepath.ToSlash(dir), entry.Name())
			if entry.IsDir() {
				if !strings.HasPrefix(entry.Name(), "_") {
					queue = append(queue, rel)
				}
				continue
			}
			if !s.wanted(rel) {
				continue
			}
			if result.Processed >= maxPages {
				break
			}
			if err := ctx.Err(); err != nil {
				return result, err
			}
			result.Processed++

			page, err := s.extract(rel)
			switch {
			case err != nil:
				s.fail(rel, err)
				result.Failed++
			case page == nil:
				result.Skipped++
			default:
				if err := fn(ctx, page); err != nil {
					return result, err
				}
				result.Extracted++
			}
		}
	}
	return result, nil
}

// wanted reports whether the file at rel is an HTML page worth extracting.
func (s *Scanner) wanted(rel string) bool {
	if !strings.EqualFold(path.Ext(rel), ".html") {
		return false
	}
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if slices.Contains(skippedPages, strings.ToLower(name)) {
		return false
	}
	return s.Exclude.Match(rel)
}

func (s *Scanner) extract(rel string) (*docindex.Page, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(string(data), rel)
}

func (s *Scanner) fail(locator string, err error) {
	if s.OnError != nil {
		s.OnError(locator, err)
	}
}
