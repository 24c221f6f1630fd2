package variant

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Matcher holds the immutable folded-key → alternation-fragment map plus
// the multi-character key index derived from it. A Matcher is read-only
// after construction and safe for concurrent use.
type Matcher struct {
	patterns map[string]string

	// multiAt matches any multi-character key anchored at the start of its
	// input; multiAny finds one anywhere. Both are nil when the map has no
	// multi-character keys.
	multiAt  *regexp.Regexp
	multiAny *regexp.Regexp

	// MinReplaced is how many input runes must gain a variant fragment
	// before a pattern is worth emitting. Set it before first use;
	// defaults to 1.
	MinReplaced int
}

// NewMatcher builds a Matcher over the given code-point ranges, or
// DefaultRanges when ranges is nil. Construction is a one-time cost; the
// returned value never changes afterwards.
func NewMatcher(ranges []CodePointRange) *Matcher {
	if ranges == nil {
		ranges = DefaultRanges
	}
	m := &Matcher{
		patterns:    BuildMap(ranges),
		MinReplaced: 1,
	}

	multi := make([]string, 0)
	for key := range m.patterns {
		if utf8.RuneCountInString(key) > 1 {
			multi = append(multi, key)
		}
	}
	if len(multi) > 0 {
		// longest first, in characters, so the anchored alternation
		// matches greedily; ties broken lexically for deterministic patterns
		sort.Slice(multi, func(i, j int) bool {
			li, lj := utf8.RuneCountInString(multi[i]), utf8.RuneCountInString(multi[j])
			if li != lj {
				return li > lj
			}
			return multi[i] < multi[j]
		})
		escaped := make([]string, len(multi))
		for i, key := range multi {
			escaped[i] = escapeLiteral(key)
		}
		joined := strings.Join(escaped, "|")
		m.multiAt = regexp.MustCompile("^(?:" + joined + ")")
		m.multiAny = regexp.MustCompile("(?:" + joined + ")")
	}
	return m
}

// Fragment returns the alternation fragment registered under the folded
// key, if any.
func (m *Matcher) Fragment(folded string) (string, bool) {
	frag, ok := m.patterns[folded]
	return frag, ok
}

// KeyCount is the number of folded keys in the map.
func (m *Matcher) KeyCount() int { return len(m.patterns) }

// MultiKeyCount is the number of folded keys longer than one rune.
func (m *Matcher) MultiKeyCount() int {
	n := 0
	for key := range m.patterns {
		if utf8.RuneCountInString(key) > 1 {
			n++
		}
	}
	return n
}

// matchAt returns the longest multi-character key beginning exactly at byte
// offset i of folded, or "" when none does.
func (m *Matcher) matchAt(folded string, i int) string {
	if m.multiAt == nil {
		return ""
	}
	return m.multiAt.FindString(folded[i:])
}
