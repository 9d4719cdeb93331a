// Package glue tokenizes queries, resolves per-token candidate variants
// against PrefixIndex and FuzzyIndex, and dispatches into PhraseIndex's
// combinatorial walk to implement the engine's six query shapes.
package glue

import (
	"github.com/bastiangx/geophrase/internal/hotcache"
	"github.com/bastiangx/geophrase/pkg/fuzzyidx"
	"github.com/bastiangx/geophrase/pkg/phraseidx"
	"github.com/bastiangx/geophrase/pkg/wordid"
)

// Instance owns the three opened, read-only indices plus the shared
// variant-resolution cache. It is safe for concurrent queries; the cache
// is the only mutable state and is internally synchronized.
type Instance struct {
	prefix *wordid.Index
	fuzzy  *fuzzyidx.Index
	phrase *phraseidx.Trie
	cache  *hotcache.Cache
	meta   Metadata
}

// Open loads a built index directory (see layout.go for file names) and
// wires up a variant-resolution cache holding up to cacheSize entries.
func Open(dir string, cacheSize int) (*Instance, error) {
	prefixPath, fuzzyFSTPath, fuzzySidePath, phrasePath, metadataPath, _ := layoutPaths(dir)

	meta, err := readMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	prefixIdx, err := wordid.Open(prefixPath)
	if err != nil {
		return nil, err
	}
	fuzzyIdx, err := fuzzyidx.Open(fuzzyFSTPath, fuzzySidePath)
	if err != nil {
		prefixIdx.Close()
		return nil, err
	}
	phraseTrie, err := phraseidx.Open(phrasePath)
	if err != nil {
		prefixIdx.Close()
		fuzzyIdx.Close()
		return nil, err
	}

	return &Instance{
		prefix: prefixIdx,
		fuzzy:  fuzzyIdx,
		phrase: phraseTrie,
		cache:  hotcache.New(cacheSize),
		meta:   meta,
	}, nil
}

// Close releases the mapped index files and drops the cache.
func (in *Instance) Close() error {
	err1 := in.prefix.Close()
	err2 := in.fuzzy.Close()
	in.cache = nil
	if err1 != nil {
		return err1
	}
	return err2
}

// Metadata returns the build-time parameters this instance was opened
// with.
func (in *Instance) Metadata() Metadata {
	return in.meta
}
