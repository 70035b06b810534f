package docindex

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default upper bound on chunk length in bytes.
const DefaultChunkSize = 8000

// Chunk splits a page into items of at most maxChars bytes of content.
// A page that fits is returned as a single item with its title unchanged;
// otherwise every chunk is titled "{title} (Part n)". All chunks share the
// page's path and source. IDs and embeddings are left for the builder.
func Chunk(page *Page, source Source, maxChars int) []*Item {
	parts := SplitContent(page.Content, maxChars)
	items := make([]*Item, 0, len(parts))
	for i, part := range parts {
		title := page.Title
		if len(parts) > 1 {
			title = fmt.Sprintf("%s (Part %d)", page.Title, i+1)
		}
		items = append(items, &Item{
			Title:   title,
			Content: part,
			Source:  source,
			Path:    page.Locator,
		})
	}
	return items
}

// SplitContent partitions content into pieces of at most maxChars bytes.
// Concatenating the pieces reproduces content exactly.
//
// Each cut is placed after the last paragraph break ("\n\n") inside the
// window. If that would leave a piece shorter than half the window, the cut
// moves to just after the last sentence break (". " or ".\n"), and failing
// that, to the window edge. Cuts never split a UTF-8 sequence, so a piece may
// exceed maxChars only when maxChars is smaller than a single rune.
func SplitContent(content string, maxChars int) []string {
	if content == "" {
		return nil
	}
	if maxChars < 1 {
		maxChars = 1
	}
	if len(content) <= maxChars {
		return []string{content}
	}

	var parts []string
	for start := 0; start < len(content); {
		end := start + maxChars
		if end >= len(content) {
			parts = append(parts, content[start:])
			break
		}
		end = start + cutPoint(content[start:end], maxChars)
		end = runeBoundary(content, start, end)
		parts = append(parts, content[start:end])
		start = end
	}
	return parts
}

// cutPoint returns the length of the next piece taken from window.
func cutPoint(window string, maxChars int) int {
	half := maxChars / 2
	if i := strings.LastIndex(window, "\n\n"); i >= half {
		return i + 2
	}
	i := max(strings.LastIndex(window, ". "), strings.LastIndex(window, ".\n"))
	if i >= half {
		return i + 2
	}
	return len(window)
}

// runeBoundary moves end back to the start of a rune, or forward past the
// first rune when moving back would produce an empty piece.
func runeBoundary(s string, start, end int) int {
	e := end
	for e > start && !utf8.RuneStart(s[e]) {
		e--
	}
	if e > start {
		return e
	}
	_, size := utf8.DecodeRuneInString(s[start:])
	return start + size
}
