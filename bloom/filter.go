// Package bloom provides the crawler's visited set: a Bloom filter answers
// most "never seen" lookups without touching the exact set behind it.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Set records locators seen during one crawl run. Unlike a bare Bloom
// filter it has no false positives: filter hits are confirmed against the
// xxhash keys of every added locator.
//
// Set is not safe for concurrent use.
type Set struct {
	filter *bloom.BloomFilter
	keys   map[uint64]struct{}
}

// NewSet creates a Set whose filter is sized for n expected locators at
// false positive rate fpRate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		filter: bloom.NewWithEstimates(n, fpRate),
		keys:   make(map[uint64]struct{}, n),
	}
}

// Add records locator and reports whether it was new.
func (s *Set) Add(locator string) bool {
	key := xxhash.Sum64String(locator)
	if s.filter.TestString(locator) {
		if _, ok := s.keys[key]; ok {
			return false
		}
	}
	s.filter.AddString(locator)
	s.keys[key] = struct{}{}
	return true
}

// Contains reports whether locator has been added.
func (s *Set) Contains(locator string) bool {
	if !s.filter.TestString(locator) {
		return false
	}
	_, ok := s.keys[xxhash.Sum64String(locator)]
	return ok
}

// Len returns the number of locators added.
func (s *Set) Len() int {
	return len(s.keys)
}
