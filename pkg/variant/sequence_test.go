package variant

import "testing"

func buildSequence(parts ...part) *sequence {
	s := &sequence{}
	for _, p := range parts {
		s.add(p)
	}
	return s
}

func TestSequenceAddTracksSpan(t *testing.T) {
	s := buildSequence(newPart(0, "ab"), newPart(2, "c"))
	if s.start != 0 || s.end != 3 {
		t.Errorf("span = [%d,%d), want [0,3)", s.start, s.end)
	}
	if s.text() != "abc" {
		t.Errorf("text = %q, want %q", s.text(), "abc")
	}
	if lp := s.last(); lp == nil || lp.substr != "c" {
		t.Errorf("last = %+v, want part %q", lp, "c")
	}
}

func TestPartInvariant(t *testing.T) {
	p := newPart(3, "ab")
	if p.end != 5 || p.length() != 2 || p.length() != len(p.substr) {
		t.Errorf("part %+v violates end == start+length == start+len(substr)", p)
	}
}

func TestCloneTruncatedLeavesOriginalIntact(t *testing.T) {
	orig := buildSequence(newPart(0, "a"), newPart(1, "iii"))
	clone := orig.cloneTruncated(2)

	if got := clone.last(); got.substr != "i" || got.start != 1 || got.end != 2 {
		t.Errorf("clone last part = %+v, want {1 2 i}", got)
	}
	if clone.end != 2 {
		t.Errorf("clone end = %d, want 2", clone.end)
	}
	if got := orig.last(); got.substr != "iii" || orig.end != 4 {
		t.Errorf("original mutated by clone: last %+v end %d", got, orig.end)
	}
}

// Fixtures for the overlap-equivalence rule. The splits ["::=" "=="] and
// ["::" "==="] cover the same text but disagree on the internal boundary,
// so both segmentations must be kept; length-1 parts, in contrast, fold
// into any part they start inside of.
func TestDuplicatesExisting(t *testing.T) {
	tests := []struct {
		name   string
		needle *sequence
		seqs   []*sequence
		want   bool
	}{
		{
			name:   "identical parts are duplicates",
			needle: buildSequence(newPart(0, "ii"), newPart(2, "i")),
			seqs:   []*sequence{buildSequence(newPart(0, "ii"), newPart(2, "i"))},
			want:   true,
		},
		{
			name:   "different span is never a duplicate",
			needle: buildSequence(newPart(0, "ii")),
			seqs:   []*sequence{buildSequence(newPart(0, "iii"))},
			want:   false,
		},
		{
			name:   "different text is never a duplicate",
			needle: buildSequence(newPart(0, "iv")),
			seqs:   []*sequence{buildSequence(newPart(0, "ix"))},
			want:   false,
		},
		{
			name:   "single-char split folds into covering part",
			needle: buildSequence(newPart(0, "i"), newPart(1, "ii")),
			seqs:   []*sequence{buildSequence(newPart(0, "iii"))},
			want:   true,
		},
		{
			// "λ" is two bytes but one character, so it folds into the
			// covering part just like an ASCII single-char split does
			name:   "multi-byte single-char split folds into covering part",
			needle: buildSequence(newPart(0, "λλ")),
			seqs:   []*sequence{buildSequence(newPart(0, "λ"), newPart(2, "λ"))},
			want:   true,
		},
		{
			name:   "multi-char splits at different boundaries both survive",
			needle: buildSequence(newPart(0, "::"), newPart(2, "===")),
			seqs:   []*sequence{buildSequence(newPart(0, "::="), newPart(3, "=="))},
			want:   false,
		},
		{
			name:   "same boundaries same text is a duplicate",
			needle: buildSequence(newPart(0, "::="), newPart(3, "==")),
			seqs:   []*sequence{buildSequence(newPart(0, "::="), newPart(3, "=="))},
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := duplicatesExisting(tt.needle, tt.seqs); got != tt.want {
				t.Errorf("duplicatesExisting = %v, want %v", got, tt.want)
			}
		})
	}
}
