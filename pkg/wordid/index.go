package wordid

import (
	"github.com/blevesearch/vellum"

	"github.com/bastiangx/geophrase/pkg/errs"
)

// Index is an opened, read-only PrefixIndex.
type Index struct {
	fst *vellum.FST
}

// Open memory-maps the PrefixIndex stored at path (see vellum.Open).
func Open(path string) (*Index, error) {
	fst, err := vellum.Open(path)
	if err != nil {
		return nil, errs.NewOpenError(path, err)
	}
	return &Index{fst: fst}, nil
}

// Close releases the mapped region.
func (idx *Index) Close() error {
	return idx.fst.Close()
}

// Get returns the word's id, or errs.ErrNotFound if word isn't in the
// lexicon.
func (idx *Index) Get(word string) (uint32, error) {
	val, found, err := idx.fst.Get([]byte(word))
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errs.ErrNotFound
	}
	return uint32(val), nil
}

// PrefixRange returns [lo, hi) covering exactly the ids of every lexicon
// word starting with prefix, or errs.ErrNotFound if no word does.
//
// Because ids were assigned in the same lexicographic order the FST is
// built in, the id of the first key in the iterator range is the minimum
// of the subtree and the id of the last is the maximum; this avoids
// needing vellum's lower-level raw automaton/node API (see DESIGN.md).
func (idx *Index) PrefixRange(prefix string) (lo, hi uint32, err error) {
	start := []byte(prefix)
	upper, bounded := prefixUpperBound(start)

	var end []byte
	if bounded {
		end = upper
	}

	it, err := idx.fst.Iterator(start, end)
	if err == vellum.ErrIteratorDone {
		return 0, 0, errs.ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}

	_, firstVal := it.Current()
	lo = uint32(firstVal)
	hi = lo

	for {
		_, val := it.Current()
		hi = uint32(val)
		if nextErr := it.Next(); nextErr != nil {
			if nextErr == vellum.ErrIteratorDone {
				break
			}
			return 0, 0, nextErr
		}
	}
	return lo, hi + 1, nil
}

// prefixUpperBound computes the smallest byte string lexicographically
// greater than every string having prefix as a prefix. Returns bounded =
// false when no such finite bound exists (prefix is all 0xFF bytes), in
// which case the caller should iterate to the natural end of the FST.
func prefixUpperBound(prefix []byte) (bound []byte, bounded bool) {
	b := append([]byte(nil), prefix...)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != 0xFF {
			b[i]++
			return b[:i+1], true
		}
	}
	return nil, false
}
