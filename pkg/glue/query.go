package glue

import (
	"errors"

	"github.com/bastiangx/geophrase/pkg/errs"
	"github.com/bastiangx/geophrase/pkg/phraseidx"
)

var errMaxWordDExceeded = errors.New("glue: max_word_d exceeds build maximum")

// Match is one accepted phrase, rendered back to words, with its total
// edit distance from the query.
type Match struct {
	Words    []string
	IDs      []uint32
	Distance int
}

// WindowMatch is one accepted sub-phrase from a sliding-window search.
type WindowMatch struct {
	Start, End      int
	Words           []string
	IDs             []uint32
	Distance        int
	EndsInPrefixHit bool
}

// MultiQuery is one entry of a FuzzyMatchMulti batch.
type MultiQuery struct {
	Words     []string
	MaxWordD  int
	MaxTotalD int
}

func (in *Instance) checkWordD(maxWordD int) error {
	if maxWordD > in.meta.MaxEditDistance {
		return errs.NewQueryError("glue", errMaxWordDExceeded)
	}
	return nil
}

func (in *Instance) idsToWords(ids []uint32) []string {
	words := make([]string, len(ids))
	for i, id := range ids {
		w, ok := in.fuzzy.Word(id)
		if !ok {
			w = ""
		}
		words[i] = w
	}
	return words
}

// Contains reports whether words is present as a complete phrase.
func (in *Instance) Contains(words []string) (bool, error) {
	ids, ok, err := in.exactIDs(words)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return in.phrase.Contains(ids), nil
}

// ContainsPrefix reports whether words is a prefix of some phrase.
func (in *Instance) ContainsPrefix(words []string) (bool, error) {
	if len(words) == 0 {
		return false, errs.NewQueryError("glue.ContainsPrefix", errs.ErrEmptyPhrase)
	}
	ids := make([]uint32, 0, len(words))
	for i, w := range words {
		if i < len(words)-1 {
			id, err := in.prefix.Get(w)
			if err != nil {
				if err == errs.ErrNotFound {
					return false, nil
				}
				return false, err
			}
			ids = append(ids, id)
		}
	}
	lo, hi, err := in.prefix.PrefixRange(words[len(words)-1])
	if err != nil {
		if err == errs.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	// contains_prefix treats the tail as a single Range consumed against
	// the trie's children directly, not through the id-list Contains path.
	return in.tailRangeReachable(ids, lo, hi), nil
}

func (in *Instance) tailRangeReachable(headIDs []uint32, lo, hi uint32) bool {
	variants := make([][]phraseidx.Variant, len(headIDs)+1)
	for i, id := range headIDs {
		variants[i] = []phraseidx.Variant{phraseidx.Exact(id, 0)}
	}
	variants[len(headIDs)] = []phraseidx.Variant{phraseidx.Range(lo, hi)}
	matches := in.phrase.MatchCombinationsAsPrefixes(variants, 0)
	return len(matches) > 0
}

func (in *Instance) exactIDs(words []string) ([]uint32, bool, error) {
	ids := make([]uint32, len(words))
	for i, w := range words {
		id, err := in.prefix.Get(w)
		if err != nil {
			if err == errs.ErrNotFound {
				return nil, false, nil
			}
			return nil, false, err
		}
		ids[i] = id
	}
	return ids, true, nil
}

// FuzzyMatch resolves words as interior tokens throughout (no prefix
// range at the tail) and returns every complete phrase reachable within
// maxTotalD, each token contributing at most maxWordD.
func (in *Instance) FuzzyMatch(words []string, maxWordD, maxTotalD int) ([]Match, error) {
	if err := in.checkWordD(maxWordD); err != nil {
		return nil, err
	}
	variants, ok, err := in.resolveAll(words, maxWordD, false)
	if err != nil || !ok {
		return nil, err
	}
	raw := in.phrase.MatchCombinations(variants, maxTotalD)
	return in.renderMatches(raw), nil
}

// FuzzyMatchPrefix is FuzzyMatch but the last token also carries a prefix
// Range candidate and acceptance uses PhraseIndex's prefix walk.
func (in *Instance) FuzzyMatchPrefix(words []string, maxWordD, maxTotalD int) ([]Match, error) {
	if err := in.checkWordD(maxWordD); err != nil {
		return nil, err
	}
	variants, ok, err := in.resolveAll(words, maxWordD, true)
	if err != nil || !ok {
		return nil, err
	}
	raw := in.phrase.MatchCombinationsAsPrefixes(variants, maxTotalD)
	return in.renderMatches(raw), nil
}

// FuzzyMatchWindows resolves every token independently (no interior
// short-circuit — positions with zero variants simply cannot
// participate) and returns every matching sub-phrase.
func (in *Instance) FuzzyMatchWindows(words []string, maxWordD, maxTotalD int, endsInPrefix bool) ([]WindowMatch, error) {
	if err := in.checkWordD(maxWordD); err != nil {
		return nil, err
	}
	variants := make([][]phraseidx.Variant, len(words))
	for i, w := range words {
		allowPrefix := endsInPrefix && i == len(words)-1
		v, err := in.resolveToken(w, maxWordD, allowPrefix)
		if err != nil {
			return nil, err
		}
		variants[i] = v
	}
	raw := in.phrase.MatchCombinationsAsWindows(variants, maxTotalD, endsInPrefix)
	out := make([]WindowMatch, 0, len(raw))
	for _, m := range raw {
		out = append(out, WindowMatch{
			Start: m.Start, End: m.End,
			Words:           in.idsToWords(m.IDs),
			IDs:             m.IDs,
			Distance:        m.Distance,
			EndsInPrefixHit: m.EndsInPrefixHit,
		})
	}
	return out, nil
}

// FuzzyMatchMulti runs FuzzyMatch across a batch of queries, sharing one
// variant-resolution cache so repeated tokens across queries resolve
// against PrefixIndex/FuzzyIndex only once.
func (in *Instance) FuzzyMatchMulti(queries []MultiQuery) ([][]Match, error) {
	out := make([][]Match, len(queries))
	for i, q := range queries {
		m, err := in.FuzzyMatch(q.Words, q.MaxWordD, q.MaxTotalD)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// resolveAll resolves every token of words, with the last token allowed a
// prefix Range iff allowPrefix. Returns ok=false (no error) if an interior
// token resolved to zero variants, per §4.4's short-circuit rule.
func (in *Instance) resolveAll(words []string, maxWordD int, allowPrefix bool) ([][]phraseidx.Variant, bool, error) {
	if len(words) == 0 {
		return nil, false, errs.NewQueryError("glue.resolveAll", errs.ErrEmptyPhrase)
	}
	variants := make([][]phraseidx.Variant, len(words))
	for i, w := range words {
		isLast := i == len(words)-1
		v, err := in.resolveToken(w, maxWordD, isLast && allowPrefix)
		if err != nil {
			return nil, false, err
		}
		if len(v) == 0 {
			return nil, false, nil
		}
		variants[i] = v
	}
	return variants, true, nil
}

func (in *Instance) renderMatches(raw []phraseidx.Match) []Match {
	out := make([]Match, 0, len(raw))
	for _, m := range raw {
		out = append(out, Match{Words: in.idsToWords(m.IDs), IDs: m.IDs, Distance: m.Distance})
	}
	return out
}
