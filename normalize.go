package docindex

import (
	"strings"
	"unicode"
)

// safePunctuation lists the non-word characters kept by Normalize.
const safePunctuation = `.,?!:;-()[]{}'"`

// Normalize collapses all whitespace to single spaces, replaces characters
// outside the safe set with a space and trims the result.
// Normalize is idempotent.
func Normalize(s string) string {
	return normalize(s, false)
}

// NormalizeSentences is like Normalize but keeps structure useful for
// chunking: whitespace containing a blank line becomes a paragraph break
// ("\n\n") and a period followed by a space becomes a period followed by a
// newline. NormalizeSentences is idempotent.
func NormalizeSentences(s string) string {
	return normalize(s, true)
}

func normalize(s string, sentences bool) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || isSafe(r) {
			return r
		}
		return ' '
	}, s)

	var b strings.Builder
	b.Grow(len(s))
	inSpace, newlines := false, 0
	flush := func() {
		if !inSpace {
			return
		}
		if sentences && newlines >= 2 {
			b.WriteString("\n\n")
		} else {
			b.WriteByte(' ')
		}
		inSpace, newlines = false, 0
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			if r == '\n' {
				newlines++
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()

	out := b.String()
	if sentences {
		out = strings.ReplaceAll(out, ". ", ".\n")
	}
	return strings.TrimSpace(out)
}

func isSafe(r rune) bool {
	return r == '_' ||
		unicode.IsLetter(r) ||
		unicode.IsDigit(r) ||
		unicode.IsMark(r) ||
		strings.ContainsRune(safePunctuation, r)
}
