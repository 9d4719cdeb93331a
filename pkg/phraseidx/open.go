package phraseidx

import (
	"os"

	"github.com/bastiangx/geophrase/pkg/errs"
)

// Open reads a phrase trie from path into memory.
//
// The on-disk representation here is this module's own flat node table
// rather than a memory-mapped automaton: the combinatorial walk needs
// child-range seeking and final-reachability-below-a-node as cheap
// primitives, which this module's Trie provides directly over a plain
// byte slice without needing an mmap library from the retrieval pack (see
// DESIGN.md). Built index directories are expected to be small enough
// that a full read is inexpensive; nothing prevents mmap-backed storage
// being swapped in behind this same function later.
func Open(path string) (*Trie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewOpenError(path, err)
	}
	defer f.Close()
	t, err := ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Save writes t to path, creating or truncating the file.
func Save(t *Trie, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.NewBuildError("phraseidx.Save", err)
	}
	defer f.Close()
	return t.WriteTo(f)
}

// BuildFromPhrases builds and saves a Trie directly from a list of
// already id-encoded phrases.
func BuildFromPhrases(phrases [][]uint32, path string) error {
	b := NewBuilder()
	for _, ids := range phrases {
		if len(ids) == 0 {
			return errs.NewBuildError("phraseidx.BuildFromPhrases", errs.ErrEmptyPhrase)
		}
		b.Insert(EncodePhrase(ids))
	}
	return Save(b.Finish(), path)
}
