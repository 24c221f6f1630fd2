// Package variant builds regular-expression patterns that match a string
// together with all of its Unicode look-alike spellings: accented letters,
// ligatures, compatibility presentation forms, and folded digraphs.
//
// The engine folds every code point in a configurable set of ranges to a
// canonical lowercase, accent-stripped form and records which raw characters
// collapse onto each folded key. Pattern generation then walks the folded
// input, resolving the ambiguous segmentations that arise when folded keys
// of different lengths overlap (for example "ii" and "iii"), and emits one
// alternation pattern covering every valid reading.
//
// Emitted patterns are meant to be compiled case-insensitively, e.g.
//
//	pat, ok := variant.GetPattern("café")
//	if ok {
//		re := regexp.MustCompile("(?i)" + pat)
//		re.MatchString("café") // true
//	}
//
// The package-level map is built once, on first use or via Initialize, and
// is read-only afterwards, so it is safe for concurrent callers.
package variant
