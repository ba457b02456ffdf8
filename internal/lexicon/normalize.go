package lexicon

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	finalJamo = strings.NewReplacer(
		"ᆯ", "ㄹ", "ᆫ", "ㄴ", "ᆸ", "ㅂ", "ᆷ", "ㅁ", "ᆼ", "ㅇ", "ᆨ", "ㄱ",
	)
	dictionaryMarks = strings.NewReplacer(
		".", "", "-", "", "–", "", "~", "", `"`, "", "'", "",
	)

	homographIndex = regexp.MustCompile(`[0-9]+\([0-9]+\)`)
	senseIndex     = regexp.MustCompile(`\([0-9]+\)`)
	trailingDigits = regexp.MustCompile(`[0-9]+$`)

	queryNoise = regexp.MustCompile(`[\s\-~()\[\].?/ㆍ]`)
)

// CleanKey normalizes a surface form into a lookup key:
//   - final jamo are folded to their consonant letters
//   - dictionary punctuation is removed
//   - homograph and sense numbers such as "2(1)", "(3)" and trailing digits are removed
//   - the result is NFKC-normalized and trimmed
//
// Every form must pass through CleanKey before it is compared with a key.
func CleanKey(raw string) string {
	if raw == "" {
		return ""
	}
	s := finalJamo.Replace(raw)
	s = strings.TrimSpace(dictionaryMarks.Replace(s))
	s = homographIndex.ReplaceAllString(s, "")
	s = senseIndex.ReplaceAllString(s, "")
	s = trailingDigits.ReplaceAllString(s, "")
	return strings.TrimSpace(norm.NFKC.String(s))
}

// normalizeQuery strips whitespace and pattern punctuation from search input.
func normalizeQuery(q string) string {
	return queryNoise.ReplaceAllString(q, "")
}
