package fuzzyidx

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func buildTestIndex(t *testing.T, words []string) *Index {
	t.Helper()
	var fstBuf, sideBuf bytes.Buffer
	if err := Build(words, 1, &fstBuf, &sideBuf); err != nil {
		t.Fatalf("Build: %v", err)
	}
	dir := t.TempDir()
	fstPath := filepath.Join(dir, "fuzzy.fst")
	sidePath := filepath.Join(dir, "fuzzy.msg")
	if err := os.WriteFile(fstPath, fstBuf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sidePath, sideBuf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	idx, err := Open(fstPath, sidePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestLookupExactAndOneEdit(t *testing.T) {
	words := []string{"ave", "blvd", "main", "street"}
	idx := buildTestIndex(t, words)

	cands, err := idx.Lookup("main", 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !containsCandidate(cands, 2, 0) {
		t.Errorf("Lookup(main,1) = %+v, want exact match on id 2 dist 0", cands)
	}

	cands, err = idx.Lookup("man", 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !containsCandidate(cands, 2, 1) {
		t.Errorf("Lookup(man,1) = %+v, want id 2 dist 1 (main)", cands)
	}
}

func TestLookupSymmetry(t *testing.T) {
	words := []string{"main", "maine"}
	idx := buildTestIndex(t, words)

	a, err := idx.Lookup("main", 1)
	if err != nil {
		t.Fatal(err)
	}
	b, err := idx.Lookup("maine", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !containsCandidate(a, 1, 1) {
		t.Errorf("Lookup(main) missing maine at dist 1: %+v", a)
	}
	if !containsCandidate(b, 0, 1) {
		t.Errorf("Lookup(maine) missing main at dist 1: %+v", b)
	}
}

func TestLookupNonAlphabeticExcluded(t *testing.T) {
	words := []string{"a1", "road"}
	idx := buildTestIndex(t, words)

	cands, err := idx.Lookup("a2", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 0 {
		t.Errorf("Lookup(a2,1) = %+v, want empty (a1 not alphabetic)", cands)
	}
}

func containsCandidate(cands []Candidate, id uint32, dist int) bool {
	for _, c := range cands {
		if c.ID == id && c.Distance == dist {
			return true
		}
	}
	return false
}
