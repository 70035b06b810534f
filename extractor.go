package docindex

// ExtractResult holds the content isolated by a single extraction strategy.
type ExtractResult struct {
	// Title is the heading the strategy found, if any.
	Title string

	// ContentHTML is the main content as HTML with boilerplate removed.
	// Empty when the strategy found no main content.
	ContentHTML string
}

// Extractor is one content extraction strategy.
// Strategies are tried in order by a PageExtractor until one yields content.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// A result with empty ContentHTML means the strategy did not apply.
	Extract(html string) (*ExtractResult, error)

	// Name identifies the strategy in logs.
	Name() string
}

// Converter converts an HTML fragment into text.
type Converter interface {
	Convert(html string) (string, error)
}
