package variant

// allSubstrings returns every ordered partition of s into contiguous
// non-empty pieces, left to right, all pieces used. "abc" yields
// [abc], [a bc], [ab c], [a b c]. The count doubles per rune, so callers
// only pass short runs (matched parts are at most maxFoldLen runes).
func allSubstrings(s string) [][]string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) == 1 {
		return [][]string{{s}}
	}

	head := string(runes[0])
	var out [][]string
	for _, rest := range allSubstrings(string(runes[1:])) {
		// head merged into the first piece
		merged := make([]string, len(rest))
		copy(merged, rest)
		merged[0] = head + merged[0]
		out = append(out, merged)

		// head as its own piece
		split := make([]string, 0, len(rest)+1)
		split = append(split, head)
		split = append(split, rest...)
		out = append(out, split)
	}
	return out
}
