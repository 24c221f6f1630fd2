package variant

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// foldReplace rewrites ligatures and slash look-alikes that survive
// compatibility decomposition. Values must themselves be fully folded so
// that Fold stays idempotent.
var foldReplace = map[rune]string{
	'æ': "ae",
	'œ': "oe",
	'ⱥ': "a",
	'ɐ': "a",
	'ɑ': "a",
	'ø': "o",
	'ɵ': "o",
	'⁄': "/", // fraction slash
	'∕': "/", // division slash
}

// strippable reports whether r is dropped entirely during folding:
// combining marks, the interpunct, and modifier-letter apostrophes.
func strippable(r rune) bool {
	return unicode.Is(unicode.Mn, r) || r == '·' || r == 'ʼ' || r == 'ʾ'
}

// reorderSensitive reports whether r falls in the vowel-sign block
// (U+0F71..U+0F81) where whole-string decomposition may reorder adjacent
// marks. Inputs containing such code points are decomposed rune by rune.
func reorderSensitive(r rune) bool {
	return r >= 0x0F71 && r <= 0x0F81
}

// Fold returns the canonical folded form of s: compatibility-decomposed,
// lowercased, with combining marks stripped and ligature/slash look-alikes
// rewritten to their plain spellings. Fold is deterministic and idempotent
// and has no dependency on package state.
func Fold(s string) string {
	lowered := strings.ToLower(decompose(s))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if rep, ok := foldReplace[r]; ok {
			b.WriteString(rep)
			continue
		}
		if strippable(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decompose applies NFKD to s. When s contains code points from the
// reorder-sensitive block, each rune is decomposed on its own; for all
// other inputs the two strategies produce byte-identical output.
func decompose(s string) string {
	if !strings.ContainsFunc(s, reorderSensitive) {
		return norm.NFKD.String(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteString(norm.NFKD.String(string(r)))
	}
	return b.String()
}
