package lexicon

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

var (
	alternativeSeparator = regexp.MustCompile(`[?/]`)
	relatedAnnotation    = regexp.MustCompile(`<[^>]*>`)
	relatedSeparator     = regexp.MustCompile(`[,;/.]`)

	idiomNoise = strings.NewReplacer("-", "", "~", "", "(으)", "")
)

type builder struct {
	tok Tokenizer
	log *slog.Logger

	words   map[Key][]domain.LexicalEntry
	grammar map[Key][]domain.LexicalEntry
	idioms  map[string][]IdiomPattern

	copula      domain.LexicalEntry
	copulaFound bool

	chunkTokens   map[string][]domain.Token
	idiomsSkipped bool
	// tokErr is set once the tokenizer is unreachable; later idioms are
	// not attempted and the build fails.
	tokErr error
}

func newBuilder(tok Tokenizer, log *slog.Logger) *builder {
	return &builder{
		tok:         tok,
		log:         log,
		words:       make(map[Key][]domain.LexicalEntry),
		grammar:     make(map[Key][]domain.LexicalEntry),
		idioms:      make(map[string][]IdiomPattern),
		copula:      defaultCopula,
		chunkTokens: make(map[string][]domain.Token),
	}
}

func (b *builder) finish() *Store {
	for head := range b.idioms {
		patterns := b.idioms[head]
		sort.SliceStable(patterns, func(i, j int) bool {
			return len(patterns[i].Sequence) > len(patterns[j].Sequence)
		})
	}
	return &Store{
		words:   b.words,
		grammar: b.grammar,
		idioms:  b.idioms,
		copula:  b.copula,
	}
}

// wordCategories derives lookup categories from a free-text POS description.
func wordCategories(pos string) []domain.Category {
	var cats []domain.Category
	dependent := strings.Contains(pos, "의존명사")
	if dependent {
		cats = append(cats, domain.CategoryDependentNoun)
	}
	if !dependent && containsAny(pos, "명사", "대명사", "수사") {
		cats = append(cats, domain.CategoryNoun)
	}
	if containsAny(pos, "동사", "형용사") {
		cats = append(cats, domain.CategoryPredicate)
	}
	if strings.Contains(pos, "관형사") {
		cats = append(cats, domain.CategoryModifier)
	}
	if strings.Contains(pos, "부사") {
		cats = append(cats, domain.CategoryAdverb)
	}
	if strings.Contains(pos, "감탄사") {
		cats = append(cats, domain.CategoryInterjection)
	}
	if len(cats) == 0 {
		cats = append(cats, domain.CategoryOf(strings.TrimSpace(pos)))
	}
	return cats
}

// grammarCategories derives lookup categories from a grammar classification.
// Rows classified only as expressions yield none and are reachable through
// idiom patterns alone.
func grammarCategories(class string) []domain.Category {
	var cats []domain.Category
	if strings.Contains(class, "연결어미") {
		cats = append(cats, domain.CategoryConnective)
	}
	if strings.Contains(class, "종결어미") {
		cats = append(cats, domain.CategoryFinal)
	}
	if strings.Contains(class, "선어말어미") {
		cats = append(cats, domain.CategoryPrefinal)
	}
	if strings.Contains(class, "전성어미") {
		cats = append(cats, domain.CategoryTransform)
	}
	if len(cats) == 0 && strings.Contains(class, "어미") {
		cats = append(cats, domain.CategoryEnding)
	}
	if containsAny(class, "조사", "보조사") {
		cats = append(cats, domain.CategoryParticle)
	}
	if strings.Contains(class, "의존명사") {
		cats = append(cats, domain.CategoryDependentNoun)
	} else if strings.Contains(class, "명사") {
		cats = append(cats, domain.CategoryNoun)
	}
	return cats
}

func (b *builder) addWord(w domain.WordRecord) {
	entry := domain.LexicalEntry{
		Level:       strings.TrimSpace(w.Level),
		UID:         strings.TrimSpace(w.UID),
		Description: strings.TrimSpace(w.Gloss),
		IsMain:      true,
		RawPOS:      strings.TrimSpace(w.POS),
		Source:      domain.SourceWord,
	}
	cats := wordCategories(w.POS)
	for _, alt := range alternativeSeparator.Split(w.Surface, -1) {
		form := CleanKey(alt)
		if form == "" {
			continue
		}
		for _, c := range cats {
			register(b.words, Key{Form: form, Category: c}, entry)
		}
	}
}

func (b *builder) addGrammar(ctx context.Context, r domain.GrammarRecord) {
	canonical := strings.TrimSpace(r.Canonical)
	entry := domain.LexicalEntry{
		Level:       strings.TrimSpace(r.Level),
		UID:         strings.TrimSpace(r.UID),
		Description: strings.TrimSpace(r.Gloss),
		Meaning:     strings.TrimSpace(r.Meaning),
		IsMain:      true,
		Class:       strings.TrimSpace(r.Class),
		Source:      domain.SourceGrammar,
	}
	if entry.UID == CopulaUID {
		b.copula = entry
		b.copulaFound = true
	}

	expression := strings.Contains(r.Class, "표현")
	cats := grammarCategories(r.Class)

	if canonical != "" {
		if expression || strings.Contains(canonical, " ") {
			b.addIdiom(ctx, canonical, entry)
		}
		key := CleanKey(canonical)
		if strings.Contains(canonical, "이다") && strings.Contains(r.Class, "조사") {
			key = "이다"
		}
		if key != "" {
			for _, c := range cats {
				register(b.grammar, Key{Form: key, Category: c}, entry)
			}
		}
	}

	related := entry
	related.IsMain = false
	for _, form := range relatedForms(r.Related) {
		if expression || strings.Contains(form, " ") {
			b.addIdiom(ctx, form, entry)
		}
		key := CleanKey(form)
		if key == "" {
			continue
		}
		for _, c := range cats {
			register(b.grammar, Key{Form: key, Category: c}, related)
		}
	}
}

// relatedForms splits the related-forms field, dropping <...> annotations.
func relatedForms(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	field = relatedAnnotation.ReplaceAllString(field, " ")
	var out []string
	for _, part := range relatedSeparator.Split(field, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// addIdiom tokenizes pattern text chunk by chunk and registers the resulting
// stem sequence under its first stem. A bare sentence-final "다" closing the
// pattern is dropped.
func (b *builder) addIdiom(ctx context.Context, pattern string, entry domain.LexicalEntry) {
	if b.tok == nil {
		if !b.idiomsSkipped {
			b.log.Warn("no tokenizer configured, idiom patterns skipped")
			b.idiomsSkipped = true
		}
		return
	}
	if b.tokErr != nil {
		return
	}

	chunks := strings.Fields(idiomNoise.Replace(pattern))
	var stems []string
	for ci, chunk := range chunks {
		toks, err := b.tokenizeChunk(ctx, chunk)
		if err != nil && (errors.Is(err, domain.ErrTokenizerUnavailable) || ctx.Err() != nil) {
			b.tokErr = err
			b.log.Error("tokenizer unavailable, idiom registration aborted",
				slog.String("pattern", pattern),
				slog.String("error", b.tokErr.Error()),
			)
			return
		}
		if err != nil {
			b.log.Debug("idiom pattern skipped",
				slog.String("pattern", pattern),
				slog.String("error", err.Error()),
			)
			return
		}
		for ti, t := range toks {
			if ci == len(chunks)-1 && ti == len(toks)-1 && t.Form == "다" && t.Tag == "EF" {
				continue
			}
			if stem := CleanKey(t.Form); stem != "" {
				stems = append(stems, stem)
			}
		}
	}
	if len(stems) < 2 {
		return
	}

	head, seq := stems[0], stems[1:]
	for _, p := range b.idioms[head] {
		if p.Entry.UID == entry.UID && slices.Equal(p.Sequence, seq) {
			return
		}
	}
	entry.IsMain = true
	b.idioms[head] = append(b.idioms[head], IdiomPattern{
		Sequence:    seq,
		Entry:       entry,
		DisplayText: pattern,
	})
}

func (b *builder) tokenizeChunk(ctx context.Context, chunk string) ([]domain.Token, error) {
	if toks, ok := b.chunkTokens[chunk]; ok {
		return toks, nil
	}
	toks, err := b.tok.Tokenize(ctx, chunk)
	if err != nil {
		return nil, err
	}
	b.chunkTokens[chunk] = toks
	return toks, nil
}

// register appends entry under key unless an entry with the same UID is present.
func register(m map[Key][]domain.LexicalEntry, key Key, entry domain.LexicalEntry) {
	for _, e := range m[key] {
		if e.UID == entry.UID {
			return
		}
	}
	m[key] = append(m[key], entry)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
