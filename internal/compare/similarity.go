package compare

// similarity computes the normalized score for a string rule: 1.0 means
// identical, 0.0 means nothing in common. Distances are measured over runes
// and normalized by the longer string.
func similarity(algorithm Algorithm, a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}

	var distance int
	switch algorithm {
	case AlgorithmLevenshtein:
		distance = editDistance(ra, rb, false)
	default:
		distance = editDistance(ra, rb, true)
	}
	return 1.0 - float64(distance)/float64(longest)
}

// editDistance computes the Levenshtein distance between two rune slices,
// optionally counting adjacent transpositions as a single edit
// (Damerau-Levenshtein). Uses a rolling three-row table.
func editDistance(a, b []rune, transpositions bool) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			best := curr[j-1] + 1 // insertion
			if del := prev[j] + 1; del < best {
				best = del
			}
			if sub := prev[j-1] + cost; sub < best {
				best = sub
			}
			if transpositions && i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if tr := prev2[j-2] + 1; tr < best {
					best = tr
				}
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(b)]
}
