package fuzzyidx

// deleteVariants returns word together with every string reachable by
// deleting 1..maxD runes from it, deduplicated. This is the symmetric-delete
// scheme's core generator, used both when building the index (from the
// stored word) and when querying it (from the input token).
func deleteVariants(word string, maxD int) []string {
	seen := map[string]struct{}{word: {}}
	frontier := [][]rune{[]rune(word)}

	for d := 0; d < maxD; d++ {
		var next [][]rune
		for _, r := range frontier {
			for i := range r {
				variant := make([]rune, 0, len(r)-1)
				variant = append(variant, r[:i]...)
				variant = append(variant, r[i+1:]...)
				s := string(variant)
				if _, ok := seen[s]; ok {
					continue
				}
				seen[s] = struct{}{}
				next = append(next, variant)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}
