package variant

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// escapeLiteral escapes s for literal use inside a regex fragment.
func escapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}

// alternation combines fragments into a single fragment matching any one of
// them. Empty fragments are dropped. An empty return value means "no
// pattern" and must never be compiled as-is. Single-rune fragments collapse
// into a character class, everything else into a non-capturing group.
func alternation(alts []string) string {
	kept := make([]string, 0, len(alts))
	for _, a := range alts {
		if a != "" {
			kept = append(kept, a)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	}

	allSingle := true
	for _, a := range kept {
		if utf8.RuneCountInString(a) != 1 {
			allSingle = false
			break
		}
	}
	if allSingle {
		var b strings.Builder
		b.WriteByte('[')
		for _, a := range kept {
			// QuoteMeta leaves '-' alone; inside a class it must not
			// form an accidental range
			if a == "-" {
				b.WriteString(`\-`)
			} else {
				b.WriteString(a)
			}
		}
		b.WriteByte(']')
		return b.String()
	}
	return "(?:" + strings.Join(kept, "|") + ")"
}

// concat joins ordered fragments into one concatenation pattern, squashing
// adjacent identical fragments into a {n} repetition when the fragment is
// safely repeatable.
func concat(frags []string) string {
	var b strings.Builder
	prev := ""
	count := 0
	flush := func() {
		if count == 0 {
			return
		}
		b.WriteString(prev)
		if count > 1 {
			fmt.Fprintf(&b, "{%d}", count)
		}
	}
	for _, f := range frags {
		if f == prev && repeatable(f) {
			count++
			continue
		}
		flush()
		prev = f
		count = 1
	}
	flush()
	return b.String()
}

// repeatable reports whether appending {n} to f repeats the whole fragment.
// True for a single rune or a bracketed group; a bare multi-character
// literal like "ab" would only repeat its final character.
func repeatable(f string) bool {
	if utf8.RuneCountInString(f) == 1 {
		return true
	}
	if strings.HasPrefix(f, "(?:") && strings.HasSuffix(f, ")") {
		return true
	}
	return strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]")
}
