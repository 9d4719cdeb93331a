package glue

import (
	"path/filepath"
	"testing"
)

func buildTestInstance(t *testing.T, phrases [][]string) *Instance {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "index")

	b := NewBuilder(1)
	for _, p := range phrases {
		if err := b.AddPhrase(p); err != nil {
			t.Fatalf("AddPhrase(%v): %v", p, err)
		}
	}
	if _, err := b.Finalize(dir); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	in, err := Open(dir, 64)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { in.Close() })
	return in
}

func words(s string) []string { return Tokenize(s) }

// S1: README example.
func TestScenario1README(t *testing.T) {
	in := buildTestInstance(t, [][]string{
		words("100 main street"),
		words("200 main street"),
		words("100 main ave"),
		words("300 mlk blvd"),
	})

	ok, err := in.Contains(words("100 main street"))
	if err != nil || !ok {
		t.Fatalf("expected contains(100 main street)=true, got %v err=%v", ok, err)
	}
	ok, err = in.Contains(words("100 main blvd"))
	if err != nil || ok {
		t.Fatalf("expected contains(100 main blvd)=false, got %v err=%v", ok, err)
	}

	matches, err := in.FuzzyMatch(words("100 man street"), 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatch: %v", err)
	}
	if len(matches) != 1 || matches[0].Distance != 1 {
		t.Fatalf("expected exactly one distance-1 match, got %+v", matches)
	}
	if got := joinWords(matches[0].Words); got != "100 main street" {
		t.Fatalf("expected corrected phrase '100 main street', got %q", got)
	}
}

// S2: prefix search, exact and fuzzy.
func TestScenario2Prefix(t *testing.T) {
	in := buildTestInstance(t, [][]string{
		words("100 main street"),
		words("100 main ave"),
	})

	ok, err := in.ContainsPrefix(words("100 main str"))
	if err != nil || !ok {
		t.Fatalf("expected contains_prefix(100 main str)=true, got %v err=%v", ok, err)
	}
	ok, err = in.ContainsPrefix(words("100 main blv"))
	if err != nil || ok {
		t.Fatalf("expected contains_prefix(100 main blv)=false, got %v err=%v", ok, err)
	}

	matches, err := in.FuzzyMatchPrefix(words("100 man str"), 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatchPrefix: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected at least one prefix match, got none")
	}
	for _, m := range matches {
		if joinWords(m.Words) != "100 main street" {
			t.Errorf("unexpected prefix match %q", joinWords(m.Words))
		}
	}
}

// S3: non-alphabetic bypass.
func TestScenario3NonAlphabeticBypass(t *testing.T) {
	in := buildTestInstance(t, [][]string{words("a1 road")})

	matches, err := in.FuzzyMatch(words("a2 road"), 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatch: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no fuzzy match for non-alphabetic token, got %+v", matches)
	}

	ok, err := in.Contains(words("a1 road"))
	if err != nil || !ok {
		t.Fatalf("expected contains(a1 road)=true, got %v err=%v", ok, err)
	}
}

// S4: window search.
func TestScenario4Window(t *testing.T) {
	in := buildTestInstance(t, [][]string{words("main street")})

	matches, err := in.FuzzyMatchWindows(words("go to main stret now"), 1, 1, false)
	if err != nil {
		t.Fatalf("FuzzyMatchWindows: %v", err)
	}

	var found bool
	for _, m := range matches {
		if m.Start == 2 && m.End == 4 && m.Distance == 1 {
			found = true
		}
		if m.End-m.Start == 0 {
			t.Fatal("zero-length window emitted")
		}
	}
	if !found {
		t.Fatalf("expected a hit at start=2,end=4 distance=1, got %+v", matches)
	}
}

// S5: prune.
func TestScenario5Prune(t *testing.T) {
	suffixes := []string{"court", "drive", "place", "circle", "lane", "trail", "way", "row", "path", "loop"}
	var phrases [][]string
	for _, s := range suffixes {
		phrases = append(phrases, words("100 main "+s))
	}
	in := buildTestInstance(t, phrases)

	matches, err := in.FuzzyMatch(words("100 man xyz"), 1, 1)
	if err != nil {
		t.Fatalf("FuzzyMatch: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected budget exhaustion to prune all matches, got %+v", matches)
	}
}

func TestFuzzyMatchMultiSharesResolution(t *testing.T) {
	in := buildTestInstance(t, [][]string{
		words("100 main street"),
		words("100 main ave"),
	})

	results, err := in.FuzzyMatchMulti([]MultiQuery{
		{Words: words("100 man street"), MaxWordD: 1, MaxTotalD: 1},
		{Words: words("100 man ave"), MaxWordD: 1, MaxTotalD: 1},
	})
	if err != nil {
		t.Fatalf("FuzzyMatchMulti: %v", err)
	}
	if len(results) != 2 || len(results[0]) != 1 || len(results[1]) != 1 {
		t.Fatalf("expected one match per query, got %+v", results)
	}
}

func joinWords(ws []string) string {
	out := ws[0]
	for _, w := range ws[1:] {
		out += " " + w
	}
	return out
}
