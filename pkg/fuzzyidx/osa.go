package fuzzyidx

// OSADistance computes the Optimal String Alignment distance between a and
// b: Damerau-Levenshtein distance without allowing a transposed pair of
// characters to be edited again afterwards. Equivalent to Levenshtein
// distance restricted to insert/delete/substitute plus single adjacent
// transpositions.
//
// Rather than a full distance matrix, only three rows of width len(b)+1
// are kept (rows i-2, i-1 and i), rotated after each row, so memory is
// O(len(b)) instead of O(len(a)*len(b)).
func OSADistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	width := lb + 1
	prev2 := make([]int, width) // row i-2
	prev1 := make([]int, width) // row i-1
	curr := make([]int, width)  // row i

	for j := 0; j <= lb; j++ {
		prev1[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev1[j] + 1
			ins := curr[j-1] + 1
			sub := prev1[j-1] + cost
			best := min3(del, ins, sub)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if trans := prev2[j-2] + 1; trans < best {
					best = trans
				}
			}
			curr[j] = best
		}
		prev2, prev1, curr = prev1, curr, prev2
	}

	return prev1[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
