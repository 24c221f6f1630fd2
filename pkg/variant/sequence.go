package variant

import (
	"strings"
	"unicode/utf8"
)

// part is one matched run within the folded input: either a single rune or
// a multi-character folded key. Offsets are byte positions into the folded
// string, so end == start+len(substr) always holds.
type part struct {
	start  int
	end    int
	substr string
}

func newPart(start int, substr string) part {
	return part{start: start, end: start + len(substr), substr: substr}
}

func (p part) length() int { return p.end - p.start }

// runeCount is the length of the part in characters rather than bytes; the
// two differ once folded keys contain non-ASCII runes.
func (p part) runeCount() int { return utf8.RuneCountInString(p.substr) }

// sequence is an ordered, gap-free list of parts representing one candidate
// segmentation of the folded input over [start, end).
type sequence struct {
	parts []part
	start int
	end   int
}

func (s *sequence) add(p part) {
	if len(s.parts) == 0 {
		s.start = p.start
	}
	s.parts = append(s.parts, p)
	s.end = p.end
}

// last returns a pointer to the final part, or nil for an empty sequence.
func (s *sequence) last() *part {
	if len(s.parts) == 0 {
		return nil
	}
	return &s.parts[len(s.parts)-1]
}

// text is the concatenation of all part substrings.
func (s *sequence) text() string {
	var b strings.Builder
	for _, p := range s.parts {
		b.WriteString(p.substr)
	}
	return b.String()
}

// cloneTruncated returns a value copy of s whose final part is cut short to
// end exactly at pos. The original is untouched; the caller appends the
// overlapping multi-character match to the clone.
func (s *sequence) cloneTruncated(pos int) *sequence {
	clone := &sequence{
		parts: make([]part, len(s.parts)),
		start: s.start,
		end:   pos,
	}
	copy(clone.parts, s.parts)
	li := len(clone.parts) - 1
	lp := clone.parts[li]
	clone.parts[li] = part{start: lp.start, end: pos, substr: lp.substr[:pos-lp.start]}
	return clone
}

// duplicatesExisting reports whether needle is structurally equivalent to a
// sequence already in seqs: same span, same concatenated text, and no part
// of the existing sequence survives the overlap filter against needle's
// parts. Two different splits of the same text, such as ["::=" "=="] versus
// ["::" "==="], are not duplicates; both segmentations must be kept.
func duplicatesExisting(needle *sequence, seqs []*sequence) bool {
	for _, seq := range seqs {
		if seq.start != needle.start || seq.end != needle.end {
			continue
		}
		if seq.text() != needle.text() {
			continue
		}
		distinct := false
		for _, p := range seq.parts {
			if !partCovered(p, needle.parts) {
				distinct = true
				break
			}
		}
		if !distinct {
			return true
		}
	}
	return false
}

// partCovered reports whether p is accounted for by one of needle's parts:
// either an exact twin (same offset, same text), or, when one of the two
// parts is a single character, p starting inside the needle part.
func partCovered(p part, needleParts []part) bool {
	for _, np := range needleParts {
		if np.start == p.start && np.substr == p.substr {
			return true
		}
		if p.runeCount() == 1 || np.runeCount() == 1 {
			if p.start >= np.start && p.start < np.end {
				return true
			}
		}
	}
	return false
}
