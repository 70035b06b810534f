package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of docindex.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error)
	LoadFn   func(ctx context.Context, path string) (int, error)
	AllFn    func() ([]*docindex.Item, error)
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]docindex.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

func (s *SearchService) Load(ctx context.Context, path string) (int, error) {
	return s.LoadFn(ctx, path)
}

func (s *SearchService) All() ([]*docindex.Item, error) {
	return s.AllFn()
}
