package wordid

import "github.com/tchap/go-patricia/v2/patricia"

// MaxWordID is the largest word id this system can represent; ids live in
// [0, MaxWordID).
const MaxWordID = 1 << 24

// Collector accumulates words during build, deduplicating them as phrases
// are tokenized.
//
// It is backed by a patricia trie so Add's membership check is O(len) per
// word instead of growing a slice and deduping it later. Visit at finalize
// time happens to walk the trie in byte order, but callers must not rely on
// that alone for final ordering: Build re-sorts the word list it receives
// regardless (see SortedWords).
type Collector struct {
	trie  *patricia.Trie
	count int
}

// NewCollector creates an empty word collector.
func NewCollector() *Collector {
	return &Collector{trie: patricia.NewTrie()}
}

// Add records word, deduplicating against words already seen.
func (c *Collector) Add(word string) {
	if word == "" {
		return
	}
	key := patricia.Prefix(word)
	if c.trie.Get(key) != nil {
		return
	}
	c.trie.Insert(key, struct{}{})
	c.count++
}

// Len returns the number of distinct words collected.
func (c *Collector) Len() int {
	return c.count
}

// SortedWords returns every collected word in the trie's visit order,
// which is byte-lexicographic in practice but not the guarantee that
// dense id assignment relies on: Build sorts its input itself before
// assigning ids (see §9 of SPEC_FULL.md), so this is a convenience
// ordering, not the authoritative one.
func (c *Collector) SortedWords() []string {
	words := make([]string, 0, c.count)
	c.trie.Visit(func(prefix patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(prefix))
		return nil
	})
	return words
}
