package variant

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxFoldLen is the longest folded key kept in the map, in runes. Characters
// folding to more than this (degenerate multi-word ligatures such as ㎯,
// which folds to "rad/s2") would produce multi-kilobyte alternation
// branches, so they are skipped outright.
const maxFoldLen = 3

// CodePointRange is an inclusive interval of Unicode scalar values to scan
// for foldable variants. A range with Lo > Hi is treated as empty.
type CodePointRange struct {
	Lo rune
	Hi rune
}

// DefaultRanges covers the Basic Multilingual Plane, which holds every
// precomposed letter, ligature, and compatibility form worth folding.
var DefaultRanges = []CodePointRange{{Lo: 0x0000, Hi: 0xFFFF}}

// candidate is one code point worth registering in the variant map:
// the raw character and the folded key it collapses onto.
type candidate struct {
	codePoint rune
	folded    string
	composed  string
}

// eachCandidate walks ranges in order and calls yield for every code point
// whose fold differs usefully from its plain lowercase form. Iteration stops
// early when yield returns false, so consumers never need the full range
// materialized.
//
// A code point is skipped when:
//   - its fold equals its own lowercase form (no look-alike value),
//   - its fold is empty (pure combining marks),
//   - its fold exceeds maxFoldLen runes,
//   - its decomposition round-trips losslessly through recomposition and its
//     fold equals that decomposition, meaning generic decomposition already
//     handles it with nothing extra to gain.
func eachCandidate(ranges []CodePointRange, yield func(candidate) bool) {
	for _, cr := range ranges {
		if cr.Lo > cr.Hi {
			// caller contract violation; treat as empty rather than
			// poisoning the whole build
			continue
		}
		for cp := cr.Lo; cp <= cr.Hi; cp++ {
			composed := string(cp)
			folded := Fold(composed)
			if folded == strings.ToLower(composed) {
				continue
			}
			if folded == "" {
				continue
			}
			if utf8.RuneCountInString(folded) > maxFoldLen {
				continue
			}
			decomposed := norm.NFKD.String(composed)
			if norm.NFC.String(decomposed) == composed && folded == decomposed {
				continue
			}
			if !yield(candidate{codePoint: cp, folded: folded, composed: composed}) {
				return
			}
		}
	}
}
