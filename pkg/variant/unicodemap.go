package variant

import (
	"regexp"
)

// BuildSets scans ranges and returns, for every folded key, the escaped raw
// variants registered under it. The folded key itself is always a member,
// so the compiled fragment matches the canonical form too.
//
// Before a variant is added it is matched against the key's existing
// alternation, case-insensitively; variants already covered (for example a
// decomposed form whose precomposed twin is present) are dropped so the
// final fragment carries no redundant branches.
func BuildSets(ranges []CodePointRange) map[string][]string {
	sets := make(map[string][]string)
	add := func(folded, raw string) {
		existing := sets[folded]
		if len(existing) > 0 {
			re := regexp.MustCompile("(?i)^(?:" + alternation(existing) + ")$")
			if re.MatchString(raw) {
				return
			}
		}
		sets[folded] = append(existing, escapeLiteral(raw))
	}
	eachCandidate(ranges, func(c candidate) bool {
		add(c.folded, c.folded)
		add(c.folded, c.composed)
		return true
	})
	return sets
}

// BuildMap compiles each key's variant set into a single alternation
// fragment. The result is total over ranges: every non-skipped code point's
// fold appears as a key, and the key's fragment matches that code point
// when compiled case-insensitively.
func BuildMap(ranges []CodePointRange) map[string]string {
	sets := BuildSets(ranges)
	m := make(map[string]string, len(sets))
	for folded, set := range sets {
		m[folded] = alternation(set)
	}
	return m
}
