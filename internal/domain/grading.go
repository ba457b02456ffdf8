package domain

import "unicode/utf8"

// Token is one morpheme produced by the external analyzer. Start and Len
// are measured in characters of the analyzed sentence.
type Token struct {
	Form  string `json:"form"`
	Tag   string `json:"tag"`
	Start int    `json:"start"`
	Len   int    `json:"len"`
}

// End returns the character offset just past the token.
func (t Token) End() int { return t.Start + t.Len }

// LexicalEntry is one graded vocabulary or grammar reference entry.
type LexicalEntry struct {
	Level       string `json:"level"`
	UID         string `json:"uid"`
	Description string `json:"desc,omitempty"`
	Meaning     string `json:"meaning,omitempty"`
	IsMain      bool   `json:"is_main"`
	Class       string `json:"class,omitempty"`
	RawPOS      string `json:"raw_pos,omitempty"`
	Source      Source `json:"source"`
}

// Gloss returns the short explanation shown for an entry.
func (e LexicalEntry) Gloss() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Meaning
}

// WordRecord is one row of the word reference table.
type WordRecord struct {
	Surface string
	POS     string
	Level   string
	UID     string
	Gloss   string
}

// GrammarRecord is one row of the grammar/pattern reference table.
type GrammarRecord struct {
	Canonical string
	Related   string
	Class     string
	Level     string
	UID       string
	Gloss     string
	Meaning   string
}

// AnnotationItem is one graded span of the analyzed sentence.
type AnnotationItem struct {
	Form         string `json:"form"`
	TagCode      string `json:"tag_code"`
	TagLabel     string `json:"tag_name"`
	Level        string `json:"level"`
	ID           string `json:"id"`
	Description  string `json:"desc"`
	OffsetStart  int    `json:"offset_start"`
	OffsetLength int    `json:"offset_len"`
}

// OffsetEnd returns the character offset just past the item.
func (a AnnotationItem) OffsetEnd() int { return a.OffsetStart + a.OffsetLength }

// AmbiguousItem records an annotation whose lookup produced several candidates.
type AmbiguousItem struct {
	Index      int            `json:"index"`
	Word       string         `json:"word"`
	Candidates []LexicalEntry `json:"candidates"`
}

// Level label markers.
const (
	LevelNotFound = "-"
	LevelSuffix   = "급"
)

// ParseGrade extracts the numeric grade from a level label such as "3급"
// by reading its first decimal digit. ok is false when the label has none.
func ParseGrade(level string) (grade int, ok bool) {
	for len(level) > 0 {
		r, size := utf8.DecodeRuneInString(level)
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
		level = level[size:]
	}
	return 0, false
}

// FormatGrade renders a grade as its level label.
func FormatGrade(grade int) string {
	if grade <= 0 {
		return GradeLabelUndetermined
	}
	return string(rune('0'+grade%10)) + LevelSuffix
}
