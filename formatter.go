package docindex

import (
	"fmt"
	"strings"
)

// FormatResults formats ranked items as context for a language model.
// Each result is headed by its title (path when untitled) and source.
// Results are separated by blank lines.
func FormatResults(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		header := r.Item.Title
		if header == "" {
			header = r.Item.Path
		}
		parts = append(parts, fmt.Sprintf("## %s (%s)\nSource: %s\n%s",
			header, r.Item.Source, r.Item.Path, r.Item.Content))
	}

	return strings.Join(parts, "\n\n")
}
