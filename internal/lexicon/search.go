package lexicon

import (
	"strings"
	"unicode/utf8"
)

// SearchKind selects which reference table Search scans.
type SearchKind string

const (
	SearchWord    SearchKind = "word"
	SearchGrammar SearchKind = "grammar"
)

func (k SearchKind) IsValid() bool {
	return k == SearchWord || k == SearchGrammar
}

// SearchResult is one reference row matching a search query.
type SearchResult struct {
	Text    string     `json:"text"`
	Level   string     `json:"grade"`
	UID     string     `json:"uid"`
	Gloss   string     `json:"desc"`
	POS     string     `json:"pos"`
	Related string     `json:"related,omitempty"`
	Meaning string     `json:"meaning"`
	Kind    SearchKind `json:"kind"`
}

// DefaultSearchLimit caps search results when the caller passes no limit.
const DefaultSearchLimit = 10

// stemEndings are stripped from grammar queries so that "-는다" also finds "-는".
var stemEndings = []string{"다", "는", "은", "ㄴ", "을", "ㄹ", "요", "죠", "니", "면"}

// Search scans the raw reference rows for query in table order.
func (s *Store) Search(query string, kind SearchKind, limit int) []SearchResult {
	q := normalizeQuery(query)
	if q == "" || !s.Ready() {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if kind == SearchGrammar {
		return s.searchGrammar(q, limit)
	}
	return s.searchWords(q, limit)
}

func (s *Store) searchWords(q string, limit int) []SearchResult {
	var out []SearchResult
	for _, w := range s.wordRecords {
		if !strings.Contains(normalizeQuery(w.Surface), q) {
			continue
		}
		out = append(out, SearchResult{
			Text:  w.Surface,
			Level: w.Level,
			UID:   w.UID,
			Gloss: w.Gloss,
			POS:   w.POS,
			Kind:  SearchWord,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *Store) searchGrammar(q string, limit int) []SearchResult {
	candidates := []string{q}
	if utf8.RuneCountInString(q) >= 2 {
		for _, end := range stemEndings {
			if stem, ok := strings.CutSuffix(q, end); ok {
				if stem != "" {
					candidates = append(candidates, stem)
				}
				break
			}
		}
	}

	var out []SearchResult
	for _, r := range s.grammarRecords {
		related := relatedForms(r.Related)
		hit := grammarMatch(r.Canonical, candidates)
		for i := 0; !hit && i < len(related); i++ {
			hit = grammarMatch(related[i], candidates)
		}
		if !hit {
			continue
		}
		out = append(out, SearchResult{
			Text:    r.Canonical,
			Level:   r.Level,
			UID:     r.UID,
			Gloss:   r.Gloss,
			POS:     r.Class,
			Related: strings.Join(related, ", "),
			Meaning: r.Meaning,
			Kind:    SearchGrammar,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// grammarMatch accepts a row form containing a candidate, or a candidate
// containing the row form's stem (at least two characters, "다" removed).
func grammarMatch(form string, candidates []string) bool {
	target := normalizeQuery(form)
	if target == "" {
		return false
	}
	for _, c := range candidates {
		if strings.Contains(target, c) {
			return true
		}
	}
	stem := strings.TrimSuffix(target, "다")
	if utf8.RuneCountInString(stem) < 2 {
		return false
	}
	for _, c := range candidates {
		if strings.Contains(c, stem) {
			return true
		}
	}
	return false
}
