package phraseidx

import "sort"

// Match is one accepted id sequence from a combinatorial search, along
// with its total edit distance.
type Match struct {
	IDs      []uint32
	Distance int
}

// WindowMatch is one accepted sub-phrase from a sliding-window search.
type WindowMatch struct {
	Start, End      int
	IDs             []uint32
	Distance        int
	EndsInPrefixHit bool
}

// Contains reports whether ids, consumed as a single BE3-encoded key, is a
// complete phrase in the index.
func (t *Trie) Contains(ids []uint32) bool {
	n, ok := t.consumeAll(t.root, ids)
	return ok && t.nodes[n].final
}

// ContainsPrefix reports whether ids is a prefix of some phrase in the
// index (including being a complete phrase itself).
func (t *Trie) ContainsPrefix(ids []uint32) bool {
	n, ok := t.consumeAll(t.root, ids)
	return ok && t.nodes[n].finalBelow
}

func (t *Trie) consumeAll(node int32, ids []uint32) (int32, bool) {
	cur := node
	for _, id := range ids {
		next, ok := t.consumeID(cur, id)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// consumeID walks the 3 bytes of BE3(id) from node, returning the
// resulting node if every transition exists.
func (t *Trie) consumeID(node int32, id uint32) (int32, bool) {
	var buf [BE3Len]byte
	EncodeBE3(buf[:0], id)
	cur := node
	for _, b := range buf {
		next := t.childByByte(cur, b)
		if next < 0 {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

func (t *Trie) childByByte(node int32, b byte) int32 {
	children := t.nodes[node].children
	i := sort.Search(len(children), func(i int) bool { return children[i].b >= b })
	if i < len(children) && children[i].b == b {
		return children[i].idx
	}
	return -1
}

// rangeHit is one 3-byte-deep id whose value falls in a queried [lo,hi)
// range, paired with the node reached after consuming it.
type rangeHit struct {
	id   uint32
	next int32
}

// rangeChildren enumerates every id in [lo, hi) reachable as a 3-byte
// path from node, pruning subtrees whose entire completion range falls
// outside [lo, hi).
func (t *Trie) rangeChildren(node int32, lo, hi uint32) []rangeHit {
	var out []rangeHit
	var rec func(n int32, depth int, prefix uint32)
	rec = func(n int32, depth int, prefix uint32) {
		if depth == BE3Len {
			if prefix >= lo && prefix < hi {
				out = append(out, rangeHit{id: prefix, next: n})
			}
			return
		}
		remaining := uint32(8 * (BE3Len - depth - 1))
		for _, c := range t.nodes[n].children {
			np := (prefix << 8) | uint32(c.b)
			npLo := np << remaining
			npHi := npLo | ((uint32(1) << remaining) - 1)
			if npHi < lo || npLo >= hi {
				continue
			}
			rec(c.idx, depth+1, np)
		}
	}
	rec(node, 0, 0)
	return out
}

func sortedVariants(vs []Variant) []Variant {
	out := append([]Variant(nil), vs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return sortKey(out[i]) < sortKey(out[j])
	})
	return out
}

// MatchCombinations walks variants depth-first, returning every complete
// phrase reachable within maxTotalD total edit distance.
func (t *Trie) MatchCombinations(variants [][]Variant, maxTotalD int) []Match {
	var out []Match
	chosen := make([]uint32, 0, len(variants))

	var rec func(node int32, depth, dist int)
	rec = func(node int32, depth, dist int) {
		if dist > maxTotalD {
			return
		}
		if depth == len(variants) {
			if t.nodes[node].final {
				out = append(out, Match{IDs: append([]uint32(nil), chosen...), Distance: dist})
			}
			return
		}
		for _, v := range sortedVariants(variants[depth]) {
			switch v.Kind {
			case KindExact:
				next, ok := t.consumeID(node, v.ID)
				if !ok {
					continue
				}
				chosen = append(chosen, v.ID)
				rec(next, depth+1, dist+v.Distance)
				chosen = chosen[:len(chosen)-1]
			case KindRange:
				for _, rh := range t.rangeChildren(node, v.Lo, v.Hi) {
					chosen = append(chosen, rh.id)
					rec(rh.next, depth+1, dist)
					chosen = chosen[:len(chosen)-1]
				}
			}
		}
	}
	rec(t.root, 0, 0)
	return out
}

// MatchCombinationsAsPrefixes is MatchCombinations, except the final
// position accepts as soon as any transition exists (when its variant was
// a Range) or as soon as a final state is reachable below the current
// node (when its variant was Exact).
func (t *Trie) MatchCombinationsAsPrefixes(variants [][]Variant, maxTotalD int) []Match {
	var out []Match
	chosen := make([]uint32, 0, len(variants))

	var rec func(node int32, depth, dist int, lastKind VariantKind)
	rec = func(node int32, depth, dist int, lastKind VariantKind) {
		if dist > maxTotalD {
			return
		}
		if depth == len(variants) {
			accept := lastKind == KindRange || t.nodes[node].finalBelow
			if accept {
				out = append(out, Match{IDs: append([]uint32(nil), chosen...), Distance: dist})
			}
			return
		}
		for _, v := range sortedVariants(variants[depth]) {
			switch v.Kind {
			case KindExact:
				next, ok := t.consumeID(node, v.ID)
				if !ok {
					continue
				}
				chosen = append(chosen, v.ID)
				rec(next, depth+1, dist+v.Distance, KindExact)
				chosen = chosen[:len(chosen)-1]
			case KindRange:
				for _, rh := range t.rangeChildren(node, v.Lo, v.Hi) {
					chosen = append(chosen, rh.id)
					rec(rh.next, depth+1, dist, KindRange)
					chosen = chosen[:len(chosen)-1]
				}
			}
		}
	}
	rec(t.root, 0, 0, KindExact)
	return out
}

// MatchCombinationsAsWindows runs the combinatorial walk from every start
// position, emitting a hit whenever the walk passes through a final node
// after consuming at least one token, and continuing to extend rather than
// stopping at the first hit.
func (t *Trie) MatchCombinationsAsWindows(variants [][]Variant, maxTotalD int, endsInPrefix bool) []WindowMatch {
	n := len(variants)
	var out []WindowMatch

	for s := 0; s < n; s++ {
		chosen := make([]uint32, 0, n-s)

		var rec func(node int32, pos, dist int, lastKind VariantKind)
		rec = func(node int32, pos, dist int, lastKind VariantKind) {
			if dist > maxTotalD {
				return
			}
			if pos-s >= 1 {
				if t.nodes[node].final {
					out = append(out, WindowMatch{
						Start: s, End: pos,
						IDs:      append([]uint32(nil), chosen...),
						Distance: dist,
					})
				}
				if endsInPrefix && pos == n && lastKind == KindRange {
					out = append(out, WindowMatch{
						Start: s, End: pos,
						IDs:             append([]uint32(nil), chosen...),
						Distance:        dist,
						EndsInPrefixHit: true,
					})
				}
			}
			if pos == n {
				return
			}
			for _, v := range sortedVariants(variants[pos]) {
				switch v.Kind {
				case KindExact:
					next, ok := t.consumeID(node, v.ID)
					if !ok {
						continue
					}
					chosen = append(chosen, v.ID)
					rec(next, pos+1, dist+v.Distance, KindExact)
					chosen = chosen[:len(chosen)-1]
				case KindRange:
					for _, rh := range t.rangeChildren(node, v.Lo, v.Hi) {
						chosen = append(chosen, rh.id)
						rec(rh.next, pos+1, dist, KindRange)
						chosen = chosen[:len(chosen)-1]
					}
				}
			}
		}
		rec(t.root, s, 0, KindExact)
	}
	return out
}
