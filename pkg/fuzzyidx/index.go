package fuzzyidx

import (
	"os"
	"sort"

	"github.com/blevesearch/vellum"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/geophrase/internal/utils"
	"github.com/bastiangx/geophrase/pkg/errs"
)

// Candidate is a fuzzy match returned by Index.Lookup.
type Candidate struct {
	ID       uint32
	Distance int
}

// Index is an opened, read-only FuzzyIndex.
type Index struct {
	fst        *vellum.FST
	words      []string
	collisions [][]uint32
}

// Open loads the FuzzyIndex's vellum map from fstPath and its side table
// from sidePath.
func Open(fstPath, sidePath string) (*Index, error) {
	fst, err := vellum.Open(fstPath)
	if err != nil {
		return nil, errs.NewOpenError(fstPath, err)
	}

	raw, err := os.ReadFile(sidePath)
	if err != nil {
		fst.Close()
		return nil, errs.NewOpenError(sidePath, err)
	}
	var payload sidePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		fst.Close()
		return nil, errs.NewOpenError(sidePath, err)
	}

	return &Index{fst: fst, words: payload.Words, collisions: payload.Collisions}, nil
}

// Close releases the mapped region.
func (idx *Index) Close() error {
	return idx.fst.Close()
}

// Lookup returns every word-id within OSA distance maxD of word,
// deduplicated by id with the minimum distance retained.
func (idx *Index) Lookup(word string, maxD int) ([]Candidate, error) {
	best := utils.NewBestDistanceByID()

	for _, variant := range deleteVariants(word, maxD) {
		val, found, err := idx.fst.Get([]byte(variant))
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		for _, id := range idx.resolveIDs(val) {
			if int(id) >= len(idx.words) {
				continue
			}
			d := OSADistance(word, idx.words[id])
			if d <= maxD {
				best.Offer(id, d)
			}
		}
	}

	ids := best.IDs()
	result := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		result = append(result, Candidate{ID: id, Distance: best.Distance(id)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Word returns the original spelling stored for id, if any. This reuses
// the reverse id→word list already carried in the side table for OSA
// recomputation, so Glue can render match results as words without a
// second copy of the lexicon.
func (idx *Index) Word(id uint32) (string, bool) {
	if int(id) >= len(idx.words) {
		return "", false
	}
	return idx.words[id], true
}

func (idx *Index) resolveIDs(val uint64) []uint32 {
	if val < BigNumber {
		return []uint32{uint32(val)}
	}
	sideIdx := val - BigNumber
	if sideIdx >= uint64(len(idx.collisions)) {
		return nil
	}
	return idx.collisions[sideIdx]
}
