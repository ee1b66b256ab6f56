package board

// ResolveLine handles the complete merge logic (compress, merge, compress
// again) for a single line, with merges flowing toward index 0. Each tile
// participates in at most one merge per call; a tile just formed by a merge
// is never merged again in the same pass. It returns the resolved line,
// right-padded with zeros to the input length, and the points gained.
//
// Callers whose travel direction runs the other way reverse the line before
// and after calling.
func ResolveLine(line []int) ([]int, int) {
	nonzero := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			nonzero = append(nonzero, v)
		}
	}

	resolved := make([]int, 0, len(line))
	gained := 0
	for i := 0; i < len(nonzero); i++ {
		if i+1 < len(nonzero) && nonzero[i] == nonzero[i+1] {
			merged := nonzero[i] * 2
			resolved = append(resolved, merged)
			gained += merged
			i++
		} else {
			resolved = append(resolved, nonzero[i])
		}
	}
	for len(resolved) < len(line) {
		resolved = append(resolved, 0)
	}
	return resolved, gained
}

func reverseLine(line []int) {
	for i, j := 0, len(line)-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
}
