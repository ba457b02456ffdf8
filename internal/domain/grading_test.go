package domain

import "testing"

func TestParseGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level  string
		want   int
		wantOK bool
	}{
		{"1급", 1, true},
		{"6급", 6, true},
		{"초급 3급", 3, true},
		{"-", 0, false},
		{"", 0, false},
		{"등급 없음", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseGrade(tt.level)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseGrade(%q) = (%d, %v), want (%d, %v)", tt.level, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatGrade(t *testing.T) {
	t.Parallel()

	if got := FormatGrade(4); got != "4급" {
		t.Errorf("FormatGrade(4) = %q", got)
	}
	if got := FormatGrade(0); got != GradeLabelUndetermined {
		t.Errorf("FormatGrade(0) = %q", got)
	}
}

func TestLexicalEntry_Gloss(t *testing.T) {
	t.Parallel()

	if got := (LexicalEntry{Description: "d", Meaning: "m"}).Gloss(); got != "d" {
		t.Errorf("Gloss() = %q, want d", got)
	}
	if got := (LexicalEntry{Meaning: "m"}).Gloss(); got != "m" {
		t.Errorf("Gloss() = %q, want m", got)
	}
}

func TestToken_End(t *testing.T) {
	t.Parallel()

	tok := Token{Form: "사과", Tag: "NNG", Start: 3, Len: 2}
	if tok.End() != 5 {
		t.Errorf("End() = %d, want 5", tok.End())
	}
}
