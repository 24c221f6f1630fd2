package variant

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

var (
	defaultMatcher *Matcher
	initOnce       sync.Once
)

// Initialize builds the process-wide matcher from ranges, or DefaultRanges
// when ranges is nil. Only the first call does any work; later calls are
// no-ops regardless of their argument. GetPattern and callers that skip
// Initialize get DefaultRanges implicitly.
func Initialize(ranges []CodePointRange) {
	initOnce.Do(func() {
		defaultMatcher = NewMatcher(ranges)
	})
}

// GetPattern converts input into a regex pattern matching every registered
// Unicode variant of it, using the process-wide matcher. ok is false when
// the input has no variant-worthy content. The pattern is meant to be
// compiled case-insensitively.
func GetPattern(input string) (pattern string, ok bool) {
	Initialize(nil)
	return defaultMatcher.Pattern(input)
}

// Pattern converts input into a regex pattern matching every registered
// Unicode variant of it. ok is false when no rune of the folded input has a
// registered variant (the pattern would be nothing but the escaped literal).
func (m *Matcher) Pattern(input string) (pattern string, ok bool) {
	folded := Fold(input)
	if folded == "" {
		return "", false
	}

	// Fast path: no multi-character key occurs anywhere, so segmentation is
	// unambiguous and every rune maps independently.
	if m.multiAny == nil || !m.multiAny.MatchString(folded) {
		runs := make([]string, 0, utf8.RuneCountInString(folded))
		for _, r := range folded {
			runs = append(runs, string(r))
		}
		return m.mapRuns(runs, m.MinReplaced)
	}

	pattern = m.scan(folded)
	return pattern, pattern != ""
}

// scan walks the folded input left to right, growing every live candidate
// segmentation in lock-step. Multi-character keys that overlap an existing
// part fork a truncated clone so both readings survive; whenever all live
// sequences grow by the identical run, the common prefix is flushed to the
// output and the live set collapses back to one sequence. This keeps the
// live set proportional to genuine ambiguity rather than to input length.
func (m *Matcher) scan(folded string) string {
	seqs := []*sequence{{}}
	var pattern strings.Builder

	for i := 0; i < len(folded); {
		_, width := utf8.DecodeRuneInString(folded[i:])
		char := folded[i : i+width]
		match := m.matchAt(folded, i)

		var overlapping []*sequence
		added := make(map[string]struct{}, 2)
		for _, seq := range seqs {
			last := seq.last()
			switch {
			case last == nil || last.runeCount() == 1 || last.end <= i:
				// fresh extension point
				if match != "" {
					seq.add(newPart(i, match))
					added["match:"+match] = struct{}{}
				} else {
					seq.add(newPart(i, char))
					added["char:"+char] = struct{}{}
				}
			case match != "":
				// the last part extends past i but another key starts
				// here: fork a clone truncated at i and give it the match
				clone := seq.cloneTruncated(i)
				clone.add(newPart(i, match))
				overlapping = append(overlapping, clone)
			default:
				// cannot extend without skipping input
				added["skip"] = struct{}{}
			}
		}

		switch {
		case len(overlapping) > 0:
			// shorter segmentations first, then drop structural duplicates
			sort.SliceStable(overlapping, func(a, b int) bool {
				return len(overlapping[a].parts) < len(overlapping[b].parts)
			})
			for _, clone := range overlapping {
				if duplicatesExisting(clone, seqs) {
					continue
				}
				seqs = append(seqs, clone)
			}
		case i > 0 && len(added) == 1:
			if _, skipped := added["skip"]; !skipped {
				// every live sequence grew identically: flush and restart
				// from a single sequence carrying the still-growing part
				pattern.WriteString(m.sequencesToPattern(seqs, false))
				fresh := &sequence{}
				if lp := seqs[0].last(); lp != nil {
					fresh.add(*lp)
				}
				seqs = []*sequence{fresh}
			}
		}
		i += width
	}

	pattern.WriteString(m.sequencesToPattern(seqs, true))
	return pattern.String()
}

// mapRuns replaces each run with its map fragment, falling back to the
// escaped literal, and returns the concatenation only when at least
// minReplaced runes actually gained a fragment.
func (m *Matcher) mapRuns(runs []string, minReplaced int) (string, bool) {
	replaced := 0
	frags := make([]string, len(runs))
	for i, run := range runs {
		if frag, found := m.patterns[run]; found {
			replaced += utf8.RuneCountInString(run)
			frags[i] = frag
		} else {
			frags[i] = escapeLiteral(run)
		}
	}
	if replaced < minReplaced {
		return "", false
	}
	return concat(frags), true
}

// substringsToPattern alternates the mapped patterns of every ordered
// partition of str. All but one rune of str must gain a fragment for a
// partition to contribute; below that the fragment is not worth emitting
// and ok is false.
func (m *Matcher) substringsToPattern(str string, minReplaced int) (string, bool) {
	if min := utf8.RuneCountInString(str) - 1; minReplaced < min {
		minReplaced = min
	}
	var alts []string
	for _, runs := range allSubstrings(str) {
		if pat, found := m.mapRuns(runs, minReplaced); found {
			alts = append(alts, pat)
		}
	}
	pat := alternation(alts)
	return pat, pat != ""
}

// sequencesToPattern alternates the concatenated patterns of the candidate
// sequences. includeLast=false omits each sequence's final part; the
// compaction step uses it to avoid emitting a part that may still grow. A
// part whose substring yields no sub-pattern contributes its escaped
// literal so the emitted pattern always matches the input itself.
func (m *Matcher) sequencesToPattern(seqs []*sequence, includeLast bool) string {
	alts := make([]string, 0, len(seqs))
	seen := make(map[string]struct{}, len(seqs))
	for _, seq := range seqs {
		n := len(seq.parts)
		if !includeLast {
			n--
		}
		var b strings.Builder
		for i := 0; i < n; i++ {
			sub := seq.parts[i].substr
			if pat, found := m.substringsToPattern(sub, 1); found {
				b.WriteString(pat)
			} else {
				b.WriteString(escapeLiteral(sub))
			}
		}
		alt := b.String()
		if _, dup := seen[alt]; dup {
			continue
		}
		seen[alt] = struct{}{}
		alts = append(alts, alt)
	}
	return alternation(alts)
}
