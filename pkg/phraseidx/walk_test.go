package phraseidx

import "testing"

func buildTrie(t *testing.T, phrases [][]uint32) *Trie {
	t.Helper()
	b := NewBuilder()
	for _, ids := range phrases {
		b.Insert(EncodePhrase(ids))
	}
	return b.Finish()
}

func TestContainsAndContainsPrefix(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}, {1, 2, 4}, {5}})

	if !tr.Contains([]uint32{1, 2, 3}) {
		t.Fatal("expected {1,2,3} to be contained")
	}
	if tr.Contains([]uint32{1, 2}) {
		t.Fatal("did not expect {1,2} to be a complete phrase")
	}
	if !tr.ContainsPrefix([]uint32{1, 2}) {
		t.Fatal("expected {1,2} to be a valid prefix")
	}
	if tr.ContainsPrefix([]uint32{9, 9}) {
		t.Fatal("did not expect {9,9} to be a valid prefix")
	}
}

func TestMatchCombinationsExact(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}, {1, 2, 4}, {2, 2, 2}})

	variants := [][]Variant{
		{Exact(1, 0)},
		{Exact(2, 0)},
		{Exact(3, 0), Exact(4, 1)},
	}
	matches := tr.MatchCombinations(variants, 1)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(matches), matches)
	}
	for _, m := range matches {
		if m.IDs[0] != 1 || m.IDs[1] != 2 {
			t.Fatalf("unexpected match %+v", m)
		}
	}
}

func TestMatchCombinationsPrunesOverBudget(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}})

	variants := [][]Variant{
		{Exact(1, 2)},
		{Exact(2, 0)},
		{Exact(3, 0)},
	}
	matches := tr.MatchCombinations(variants, 1)
	if len(matches) != 0 {
		t.Fatalf("expected budget of 1 to prune a distance-2 token, got %+v", matches)
	}
}

func TestMatchCombinationsAsPrefixesAcceptsRangeTail(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}, {1, 2, 9}})

	variants := [][]Variant{
		{Exact(1, 0)},
		{Exact(2, 0)},
		{Range(0, 100)},
	}
	matches := tr.MatchCombinationsAsPrefixes(variants, 0)
	if len(matches) != 2 {
		t.Fatalf("expected both phrases reachable via range tail, got %+v", matches)
	}
}

func TestMatchCombinationsAsWindows(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2}, {2, 3}, {1, 2, 3}})

	variants := [][]Variant{
		{Exact(1, 0)},
		{Exact(2, 0)},
		{Exact(3, 0)},
	}
	matches := tr.MatchCombinationsAsWindows(variants, 0, false)

	found := map[[2]int]bool{}
	for _, m := range matches {
		found[[2]int{m.Start, m.End}] = true
	}
	if !found[[2]int{0, 2}] {
		t.Error("expected window hit for {1,2}")
	}
	if !found[[2]int{1, 3}] {
		t.Error("expected window hit for {2,3}")
	}
	if !found[[2]int{0, 3}] {
		t.Error("expected window hit for {1,2,3}")
	}
	for _, m := range matches {
		if m.End-m.Start == 0 {
			t.Fatal("zero-length window hit must never be emitted")
		}
	}
}

func TestMatchCombinationsAsWindowsEndsInPrefix(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}})

	variants := [][]Variant{
		{Exact(1, 0)},
		{Range(0, 100)},
	}
	matches := tr.MatchCombinationsAsWindows(variants, 0, true)

	// Start 0 reaches {1, 2} through the range tail; start 1 reaches {1}
	// through the range alone, since id 1 also lies in [0, 100).
	want := [][2]int{{0, 2}, {1, 2}}
	var got [][2]int
	for _, m := range matches {
		if m.EndsInPrefixHit {
			got = append(got, [2]int{m.Start, m.End})
		}
	}
	if len(got) == 0 {
		t.Fatal("expected an ends-in-prefix hit for {1, <range>}")
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected prefix hit bounds %v, want %v", got, want)
	}
}

func TestRangeChildrenPruning(t *testing.T) {
	tr := buildTrie(t, [][]uint32{{1, 2, 3}, {500, 2, 3}})

	hits := tr.rangeChildren(tr.root, 0, 10)
	if len(hits) != 1 || hits[0].id != 1 {
		t.Fatalf("expected only id 1 in range [0,10), got %+v", hits)
	}
}
