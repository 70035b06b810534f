package docindex

import "context"

// DefaultSearchLimit is the number of results returned when a caller does
// not ask for a specific count.
const DefaultSearchLimit = 5

// SearchResult is a corpus item ranked against a query.
type SearchResult struct {
	Item  *Item   `json:"item"`
	Score float32 `json:"score"`
}

// SearchService answers similarity queries over a loaded corpus.
type SearchService interface {
	// Search embeds the query and returns at most limit items ordered by
	// descending similarity. A limit <= 0 yields no results.
	// Returns ENOTLOADED before a corpus is loaded.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// Load reads the corpus at path (the default corpus if empty) and
	// replaces the served snapshot. Returns the number of items loaded.
	Load(ctx context.Context, path string) (int, error)

	// All returns every item of the loaded corpus.
	All() ([]*Item, error)
}
