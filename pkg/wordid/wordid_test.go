package wordid

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/geophrase/pkg/errs"
)

func buildTestIndex(t *testing.T, words []string) *Index {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Build(words, &buf); err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "prefix.fst")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	idx, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestGetDenseIDs(t *testing.T) {
	words := []string{"street", "ave", "main", "blvd", "main"}
	idx := buildTestIndex(t, words)

	sorted := []string{"ave", "blvd", "main", "street"}
	for wantID, w := range sorted {
		id, err := idx.Get(w)
		if err != nil {
			t.Fatalf("Get(%q): %v", w, err)
		}
		if int(id) != wantID {
			t.Errorf("Get(%q) = %d, want %d", w, id, wantID)
		}
	}

	if _, err := idx.Get("nope"); err == nil {
		t.Errorf("Get(%q) expected error", "nope")
	}
}

func TestPrefixRange(t *testing.T) {
	words := []string{"main", "mlk", "mainly", "maintenance", "ave"}
	idx := buildTestIndex(t, words)

	lo, hi, err := idx.PrefixRange("main")
	if err != nil {
		t.Fatalf("PrefixRange: %v", err)
	}
	if hi <= lo {
		t.Fatalf("PrefixRange returned empty range [%d, %d)", lo, hi)
	}

	for _, w := range []string{"main", "mainly", "maintenance"} {
		id, err := idx.Get(w)
		if err != nil {
			t.Fatalf("Get(%q): %v", w, err)
		}
		if id < lo || id >= hi {
			t.Errorf("id(%q)=%d not in range [%d, %d)", w, id, lo, hi)
		}
	}

	mlkID, err := idx.Get("mlk")
	if err != nil {
		t.Fatalf("Get(mlk): %v", err)
	}
	if mlkID >= lo && mlkID < hi {
		t.Errorf("mlk id %d unexpectedly in range [%d, %d)", mlkID, lo, hi)
	}

	if _, _, err := idx.PrefixRange("zzz"); err == nil {
		t.Errorf("PrefixRange(zzz) expected error")
	}
}

func TestCollectorSortsAndDedupes(t *testing.T) {
	c := NewCollector()
	for _, w := range []string{"main", "ave", "main", "blvd"} {
		c.Add(w)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	got := c.SortedWords()
	want := []string{"ave", "blvd", "main"}
	if len(got) != len(want) {
		t.Fatalf("SortedWords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedWords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildIDSpaceExhausted(t *testing.T) {
	orig := idSpaceLimit
	idSpaceLimit = 3
	t.Cleanup(func() { idSpaceLimit = orig })

	_, err := Build([]string{"ave", "blvd", "main"}, io.Discard)
	if !errors.Is(err, errs.ErrIDSpaceExhausted) {
		t.Fatalf("Build: got %v, want ErrIDSpaceExhausted", err)
	}
}
