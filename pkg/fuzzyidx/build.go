// Package fuzzyidx implements FuzzyIndex: the symmetric-delete bounded
// edit-distance lookup over the same word-id space PrefixIndex assigns.
package fuzzyidx

import (
	"io"
	"sort"

	"github.com/blevesearch/vellum"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/geophrase/pkg/errs"
	"github.com/bastiangx/geophrase/pkg/script"
)

// BigNumber flags a vellum value as an index into the collision side table
// rather than a direct word id, mirroring the scheme this index is modeled
// on (original_source/src/fuzzy/map.rs).
const BigNumber = uint64(1) << 30

// sidePayload is the msgpack-encoded contents of fuzzy.msg: the reverse
// id->word list (needed to recompute true OSA distance against a
// candidate's original spelling) and the collision table referenced by
// BigNumber-flagged values.
type sidePayload struct {
	Words      []string   `msgpack:"words"`
	Collisions [][]uint32 `msgpack:"collisions"`
}

// Build writes the FuzzyIndex's primary map to fstWriter and its side
// table to sideWriter. sortedWords must be the same id-ordered word list
// PrefixIndex was built from. maxDist is the build-time D (1 in this
// system); words are gated by script.IsAlphabetic before variants are
// generated, per §4.2's bypass policy.
func Build(sortedWords []string, maxDist int, fstWriter, sideWriter io.Writer) error {
	variantIDs := make(map[string]map[uint32]struct{})

	for id, w := range sortedWords {
		if !script.IsAlphabetic(w) {
			continue
		}
		for _, v := range deleteVariants(w, maxDist) {
			ids, ok := variantIDs[v]
			if !ok {
				ids = make(map[uint32]struct{})
				variantIDs[v] = ids
			}
			ids[uint32(id)] = struct{}{}
		}
	}

	keys := make([]string, 0, len(variantIDs))
	for k := range variantIDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fstBuilder, err := vellum.New(fstWriter, nil)
	if err != nil {
		return errs.NewBuildError("fuzzyidx.Build", err)
	}

	var collisions [][]uint32
	for _, k := range keys {
		idSet := variantIDs[k]
		ids := make([]uint32, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		var val uint64
		if len(ids) == 1 {
			val = uint64(ids[0])
		} else {
			val = BigNumber + uint64(len(collisions))
			collisions = append(collisions, ids)
		}
		if err := fstBuilder.Insert([]byte(k), val); err != nil {
			return errs.NewBuildError("fuzzyidx.Build", err)
		}
	}
	if err := fstBuilder.Close(); err != nil {
		return errs.NewBuildError("fuzzyidx.Build", err)
	}

	payload := sidePayload{
		Words:      append([]string(nil), sortedWords...),
		Collisions: collisions,
	}
	enc := msgpack.NewEncoder(sideWriter)
	if err := enc.Encode(&payload); err != nil {
		return errs.NewBuildError("fuzzyidx.Build", err)
	}
	return nil
}
