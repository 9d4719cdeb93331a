// Package wordid implements PrefixIndex: the dense, lexicographically
// ordered word -> id map whose contiguity invariant turns prefix lookups
// into integer-range lookups.
package wordid

import (
	"io"
	"sort"

	"github.com/blevesearch/vellum"

	"github.com/bastiangx/geophrase/pkg/errs"
)

// idSpaceLimit is MaxWordID in production. It's a var, not the constant
// directly, so tests can shrink it and exercise ErrIDSpaceExhausted
// without generating 2^24 words.
var idSpaceLimit = MaxWordID

// Build writes a PrefixIndex to w from a set of already-deduplicated words.
// It sorts the words, assigns ids 0..n-1 in that order, and returns the
// sorted words so the caller can reuse the same id assignment elsewhere
// (FuzzyIndex and PhraseIndex both need it).
func Build(words []string, w io.Writer) ([]string, error) {
	sorted := sortUnique(words)
	if len(sorted) >= idSpaceLimit {
		return nil, errs.NewBuildError("wordid.Build", errs.ErrIDSpaceExhausted)
	}

	fstBuilder, err := vellum.New(w, nil)
	if err != nil {
		return nil, errs.NewBuildError("wordid.Build", err)
	}
	for id, word := range sorted {
		if err := fstBuilder.Insert([]byte(word), uint64(id)); err != nil {
			return nil, errs.NewBuildError("wordid.Build", err)
		}
	}
	if err := fstBuilder.Close(); err != nil {
		return nil, errs.NewBuildError("wordid.Build", err)
	}
	return sorted, nil
}

// sortUnique sorts words and drops adjacent duplicates. Collector already
// deduplicates, but Build accepts a plain []string too so it can be driven
// directly from tests or from a word list that didn't go through a
// Collector.
func sortUnique(words []string) []string {
	cp := append([]string(nil), words...)
	sort.Strings(cp)
	out := cp[:0]
	var prev string
	first := true
	for _, w := range cp {
		if first || w != prev {
			out = append(out, w)
			prev = w
			first = false
		}
	}
	return out
}
