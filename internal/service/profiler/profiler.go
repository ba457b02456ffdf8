// Package profiler walks an analyzed token stream and grades it against the
// lexicon: idiom patterns first, then the copula override, two-token merges
// and single-token lookups, with one batched oracle call at the end for
// tokens whose lookup stayed ambiguous.
package profiler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
)

// Tag code and label of merged idiom items.
const (
	TagExpression   = "Expression"
	LabelExpression = "문법적 표현"
	labelCompound   = "복합어/파생어"
	idiomIDPrefix   = "표현"
	oracleMarker    = "🤖 "
)

// mergePriority is the category order tried by two-token merges.
var mergePriority = []domain.Category{
	domain.CategoryNoun,
	domain.CategoryDependentNoun,
	domain.CategoryPredicate,
	domain.CategoryModifier,
	domain.CategoryAdverb,
	domain.CategoryInterjection,
}

// Fixed entries for tokens the reference tables grade poorly.
var (
	haSuffixEntry = domain.LexicalEntry{
		Level:       "2급",
		UID:         "1769",
		Description: "-하다 (파생 접미사)",
		IsMain:      true,
		Source:      domain.SourceWord,
	}
	finalDaEntry = domain.LexicalEntry{
		Level:  "3급",
		UID:    "120",
		IsMain: true,
		Source: domain.SourceGrammar,
	}
)

type lexiconStore interface {
	Idioms(head string) []lexicon.IdiomPattern
	Words(form string, cat domain.Category) []domain.LexicalEntry
	Grammar(form string, cat domain.Category) []domain.LexicalEntry
	Copula() domain.LexicalEntry
}

type oracle interface {
	Resolve(ctx context.Context, sentence string, items []domain.AmbiguousItem) (map[string]string, string)
}

// Result is the outcome of one annotation pass.
type Result struct {
	Items     []domain.AnnotationItem
	Ambiguous []domain.AmbiguousItem
	MaxLevel  int
	Trace     []string
}

// Profiler annotates token streams. It holds no per-sentence state and is
// safe for concurrent use.
type Profiler struct {
	oracle oracle
	log    *slog.Logger
}

// NewProfiler creates a profiler. A nil oracle disables ambiguity resolution.
func NewProfiler(logger *slog.Logger, o oracle) *Profiler {
	return &Profiler{
		oracle: o,
		log:    logger.With("service", "profiler"),
	}
}

// Profile annotates tokens of sentence against store.
func (p *Profiler) Profile(ctx context.Context, store lexiconStore, sentence string, tokens []domain.Token) Result {
	ps := &pass{
		store:  store,
		tokens: tokens,
		keys:   make([]string, len(tokens)),
	}
	for i, t := range tokens {
		ps.keys[i] = lexicon.CleanKey(t.Form)
	}

	for i := 0; i < len(tokens); {
		if n, ok := ps.matchIdiom(i); ok {
			i += n
			continue
		}
		if domain.IsCopula(tokens[i].Tag) {
			ps.copula(i)
			i++
			continue
		}
		if n, ok := ps.merge(i); ok {
			i += n
			continue
		}
		ps.single(i)
		i++
	}

	if len(ps.ambiguous) > 0 {
		p.resolve(ctx, ps, sentence)
	}

	res := Result{
		Items:     ps.items,
		Ambiguous: ps.ambiguous,
		MaxLevel:  MaxGrade(ps.items),
		Trace:     ps.trace,
	}
	p.log.DebugContext(ctx, "sentence profiled",
		slog.Int("tokens", len(tokens)),
		slog.Int("items", len(res.Items)),
		slog.Int("ambiguous", len(res.Ambiguous)),
		slog.Int("max_level", res.MaxLevel),
	)
	return res
}

// resolve sends every ambiguous item to the oracle in one request and
// applies the decisions it can match to a candidate.
func (p *Profiler) resolve(ctx context.Context, ps *pass, sentence string) {
	if p.oracle == nil {
		ps.tracef("ℹ️ 중의성 %d건: 판별기 없음, 기본 선택 유지", len(ps.ambiguous))
		return
	}

	decisions, raw := p.oracle.Resolve(ctx, sentence, ps.ambiguous)
	p.log.DebugContext(ctx, "oracle replied",
		slog.Int("items", len(ps.ambiguous)),
		slog.Int("decisions", len(decisions)),
		slog.String("raw", raw),
	)

	for i, amb := range ps.ambiguous {
		uid, ok := decisions[strconv.Itoa(i)]
		if !ok {
			uid, ok = decisions[amb.Word]
		}
		if !ok {
			ps.tracef("⚠️ AI 응답 누락 [%d] %s", i, amb.Word)
			continue
		}
		uid = strings.TrimSpace(uid)
		cand, found := findUID(amb.Candidates, uid)
		if !found {
			ps.tracef("⚠️ ID 불일치 [%d] %s: %s", i, amb.Word, uid)
			continue
		}

		item := &ps.items[amb.Index]
		item.Level = cand.Level
		item.ID = entryID(cand)
		item.Description = oracleMarker + cand.Gloss()
		ps.tracef("🤖 AI 교정 [%s] → %s (#%s)", amb.Word, cand.Level, cand.UID)
	}
}

// pass is the mutable state of one annotation run.
type pass struct {
	store  lexiconStore
	tokens []domain.Token
	keys   []string

	items     []domain.AnnotationItem
	ambiguous []domain.AmbiguousItem
	trace     []string
}

func (ps *pass) tracef(format string, args ...any) {
	ps.trace = append(ps.trace, fmt.Sprintf(format, args...))
}

func (ps *pass) emit(item domain.AnnotationItem) {
	ps.items = append(ps.items, item)
}

func (ps *pass) markAmbiguous(word string, cands []domain.LexicalEntry) {
	ps.ambiguous = append(ps.ambiguous, domain.AmbiguousItem{
		Index:      len(ps.items),
		Word:       word,
		Candidates: cands,
	})
	ps.tracef("❓ [중의성] %s: 후보 %d개", word, len(cands))
}

// matchIdiom tries the patterns keyed by the current token, longest first.
func (ps *pass) matchIdiom(i int) (int, bool) {
	for _, pat := range ps.store.Idioms(ps.keys[i]) {
		k := len(pat.Sequence)
		if i+k >= len(ps.tokens) {
			continue
		}
		if !ps.followedBy(i, pat.Sequence) {
			continue
		}

		first, last := ps.tokens[i], ps.tokens[i+k]
		forms := make([]string, 0, k+1)
		for _, t := range ps.tokens[i : i+k+1] {
			forms = append(forms, t.Form)
		}
		ps.emit(domain.AnnotationItem{
			Form:         strings.Join(forms, "+"),
			TagCode:      TagExpression,
			TagLabel:     LabelExpression,
			Level:        pat.Entry.Level,
			ID:           idiomIDPrefix + "#" + pat.Entry.UID,
			Description:  pat.Entry.Gloss(),
			OffsetStart:  first.Start,
			OffsetLength: last.End() - first.Start,
		})
		ps.tracef("🧩 [표현] %s → %s (#%s)", pat.DisplayText, pat.Entry.Level, pat.Entry.UID)
		return k + 1, true
	}
	return 0, false
}

func (ps *pass) followedBy(i int, seq []string) bool {
	for j, stem := range seq {
		if ps.keys[i+1+j] != stem {
			return false
		}
	}
	return true
}

func (ps *pass) copula(i int) {
	t := ps.tokens[i]
	e := ps.store.Copula()
	ps.emit(tokenItem(t, e))
	ps.tracef("📌 [서술격 조사] %s → %s", t.Form, e.Level)
}

// merge tries to grade the current and next token as one unit. Tokens that
// normalize to nothing, such as punctuation, never merge.
func (ps *pass) merge(i int) (int, bool) {
	if i+1 >= len(ps.tokens) || ps.keys[i] == "" || ps.keys[i+1] == "" {
		return 0, false
	}
	t, next := ps.tokens[i], ps.tokens[i+1]
	combined := ps.keys[i] + ps.keys[i+1]

	for _, cat := range mergePriority {
		for _, key := range mergeKeys(combined, cat) {
			cands := canonicalOnly(append(
				append([]domain.LexicalEntry(nil), ps.store.Words(key, cat)...),
				ps.store.Grammar(key, cat)...,
			))
			if len(cands) == 0 {
				continue
			}
			if len(cands) > 1 {
				ps.markAmbiguous(key, cands)
			}
			ps.emit(mergedItem(t, next, cands[0]))
			ps.tracef("🔗 [결합] %s+%s → %s (#%s)", t.Form, next.Form, cands[0].Level, cands[0].UID)
			return 2, true
		}
	}

	return 0, false
}

// mergeKeys lists the keys tried for a category: the literal concatenation
// first, then the dictionary form for predicate-like categories. The
// dictionary form also grades root+suffix pairs such as 건강+하 as 건강하다.
func mergeKeys(combined string, cat domain.Category) []string {
	keys := []string{combined}
	if (cat == domain.CategoryPredicate || cat == domain.CategoryOther) && !strings.HasSuffix(combined, "다") {
		keys = append(keys, combined+"다")
	}
	return keys
}

func (ps *pass) single(i int) {
	t := ps.tokens[i]
	key := ps.keys[i]
	cat := domain.CategoryOf(t.Tag)
	target := key

	var cands []domain.LexicalEntry
	switch {
	case (t.Tag == "XSV" || t.Tag == "XSA") && key == "하":
		cands = []domain.LexicalEntry{haSuffixEntry}
	case t.Tag == "EF" && key == "다":
		cands = []domain.LexicalEntry{finalDaEntry}
	case domain.IsParticleOrEnding(t.Tag):
		cands = ps.store.Grammar(key, cat)
		if len(cands) == 0 {
			cands = ps.store.Grammar(key, broadCategory(t.Tag))
		}
	default:
		if cat == domain.CategoryPredicate && !strings.HasSuffix(key, "다") {
			target = key + "다"
		}
		cands = append(
			append([]domain.LexicalEntry(nil), ps.store.Words(target, cat)...),
			ps.store.Grammar(target, cat)...,
		)
	}

	if len(cands) == 0 {
		ps.emit(domain.AnnotationItem{
			Form:         t.Form,
			TagCode:      t.Tag,
			TagLabel:     domain.TagLabel(t.Tag),
			Level:        domain.LevelNotFound,
			OffsetStart:  t.Start,
			OffsetLength: t.Len,
		})
		ps.tracef("❌ [미등록] %s (%s)", t.Form, t.Tag)
		return
	}

	cands = sortByGrade(canonicalOnly(cands))
	if len(cands) > 1 {
		ps.markAmbiguous(target, cands)
	}
	sel := cands[0]
	ps.emit(tokenItem(t, sel))
	ps.tracef("✅ [%s] %s → %s (#%s)", t.Tag, t.Form, sel.Level, sel.UID)
}

// broadCategory is the fallback lookup category for particles and endings.
func broadCategory(tag string) domain.Category {
	if strings.HasPrefix(tag, "J") {
		return domain.CategoryParticle
	}
	return domain.CategoryEnding
}

func tokenItem(t domain.Token, e domain.LexicalEntry) domain.AnnotationItem {
	return domain.AnnotationItem{
		Form:         t.Form,
		TagCode:      t.Tag,
		TagLabel:     domain.TagLabel(t.Tag),
		Level:        e.Level,
		ID:           entryID(e),
		Description:  e.Gloss(),
		OffsetStart:  t.Start,
		OffsetLength: t.Len,
	}
}

// mergedItem reports the surface text of both tokens as Form (건강+하 gives
// "건강하"), not the normalized or dictionary key that matched. The matched
// entry is identified by ID.
func mergedItem(t, next domain.Token, e domain.LexicalEntry) domain.AnnotationItem {
	return domain.AnnotationItem{
		Form:         t.Form + next.Form,
		TagCode:      t.Tag + "+" + next.Tag,
		TagLabel:     mergeLabel(e),
		Level:        e.Level,
		ID:           entryID(e),
		Description:  e.Gloss(),
		OffsetStart:  t.Start,
		OffsetLength: next.End() - t.Start,
	}
}

func mergeLabel(e domain.LexicalEntry) string {
	switch {
	case strings.Contains(e.Class, "표현"):
		return LabelExpression
	case e.Class != "":
		return e.Class
	case e.RawPOS != "":
		return e.RawPOS
	}
	return labelCompound
}

func entryID(e domain.LexicalEntry) string {
	return e.Source.IDPrefix() + "#" + e.UID
}

// canonicalOnly returns a fresh slice holding the canonical entries when
// any exist, otherwise all entries.
func canonicalOnly(cands []domain.LexicalEntry) []domain.LexicalEntry {
	var main []domain.LexicalEntry
	for _, c := range cands {
		if c.IsMain {
			main = append(main, c)
		}
	}
	if len(main) > 0 {
		return main
	}
	return append([]domain.LexicalEntry(nil), cands...)
}

// sortByGrade orders entries by ascending numeric grade in place. Entries
// without a grade go last; ties keep their table order.
func sortByGrade(cands []domain.LexicalEntry) []domain.LexicalEntry {
	rank := func(e domain.LexicalEntry) int {
		if g, ok := domain.ParseGrade(e.Level); ok {
			return g
		}
		return 10
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return rank(cands[i]) < rank(cands[j])
	})
	return cands
}

func findUID(cands []domain.LexicalEntry, uid string) (domain.LexicalEntry, bool) {
	for _, c := range cands {
		if c.UID == uid {
			return c, true
		}
	}
	return domain.LexicalEntry{}, false
}

// MaxGrade returns the highest numeric grade among items, or 0 if none.
// Levels without a digit are skipped.
func MaxGrade(items []domain.AnnotationItem) int {
	maxGrade := 0
	for _, it := range items {
		if it.Level == domain.LevelNotFound {
			continue
		}
		if g, ok := domain.ParseGrade(it.Level); ok && g > maxGrade {
			maxGrade = g
		}
	}
	return maxGrade
}
