package corpus

import (
	"slices"

	"github.com/fwojciec/docindex"
)

// Merge replaces the source partition of existing with built.
//
// Existing items of source, and of any excluded source, are dropped; the
// remaining existing items keep their order and the built items follow.
// Neither input slice is modified.
func Merge(existing, built []*docindex.Item, source docindex.Source, exclude ...docindex.Source) []*docindex.Item {
	merged := make([]*docindex.Item, 0, len(existing)+len(built))
	for _, item := range existing {
		if item.Source == source || slices.Contains(exclude, item.Source) {
			continue
		}
		merged = append(merged, item)
	}
	return append(merged, built...)
}
