package profiler

import (
	"context"
	"sync"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
)

var _ oracle = &oracleMock{}

type oracleMock struct {
	ResolveFunc func(ctx context.Context, sentence string, items []domain.AmbiguousItem) (map[string]string, string)

	calls struct {
		Resolve []struct {
			Sentence string
			Items    []domain.AmbiguousItem
		}
	}
	lockResolve sync.RWMutex
}

func (mock *oracleMock) Resolve(ctx context.Context, sentence string, items []domain.AmbiguousItem) (map[string]string, string) {
	if mock.ResolveFunc == nil {
		panic("oracleMock.ResolveFunc: method is nil but oracle.Resolve was just called")
	}
	callInfo := struct {
		Sentence string
		Items    []domain.AmbiguousItem
	}{Sentence: sentence, Items: items}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, sentence, items)
}

func (mock *oracleMock) ResolveCalls() []struct {
	Sentence string
	Items    []domain.AmbiguousItem
} {
	mock.lockResolve.RLock()
	defer mock.lockResolve.RUnlock()
	return mock.calls.Resolve
}

var _ lexiconStore = &fakeStore{}

// fakeStore is an in-memory lexicon keyed exactly like the real store.
type fakeStore struct {
	words   map[lexicon.Key][]domain.LexicalEntry
	grammar map[lexicon.Key][]domain.LexicalEntry
	idioms  map[string][]lexicon.IdiomPattern
	copula  domain.LexicalEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		words:   map[lexicon.Key][]domain.LexicalEntry{},
		grammar: map[lexicon.Key][]domain.LexicalEntry{},
		idioms:  map[string][]lexicon.IdiomPattern{},
		copula:  domain.LexicalEntry{Level: "1급", UID: "17", Description: "서술격 조사", IsMain: true, Source: domain.SourceGrammar},
	}
}

func (f *fakeStore) word(form string, cat domain.Category, e domain.LexicalEntry) *fakeStore {
	e.Source = domain.SourceWord
	k := lexicon.Key{Form: form, Category: cat}
	f.words[k] = append(f.words[k], e)
	return f
}

func (f *fakeStore) gram(form string, cat domain.Category, e domain.LexicalEntry) *fakeStore {
	e.Source = domain.SourceGrammar
	k := lexicon.Key{Form: form, Category: cat}
	f.grammar[k] = append(f.grammar[k], e)
	return f
}

func (f *fakeStore) idiom(head string, seq []string, e domain.LexicalEntry) *fakeStore {
	e.Source = domain.SourceGrammar
	f.idioms[head] = append(f.idioms[head], lexicon.IdiomPattern{Sequence: seq, Entry: e, DisplayText: head})
	return f
}

func (f *fakeStore) Idioms(head string) []lexicon.IdiomPattern { return f.idioms[head] }

func (f *fakeStore) Words(form string, cat domain.Category) []domain.LexicalEntry {
	return f.words[lexicon.Key{Form: form, Category: cat}]
}

func (f *fakeStore) Grammar(form string, cat domain.Category) []domain.LexicalEntry {
	return f.grammar[lexicon.Key{Form: form, Category: cat}]
}

func (f *fakeStore) Copula() domain.LexicalEntry { return f.copula }

// toks builds a contiguous token list from alternating form/tag pairs.
func toks(pairs ...string) []domain.Token {
	out := make([]domain.Token, 0, len(pairs)/2)
	pos := 0
	for i := 0; i+1 < len(pairs); i += 2 {
		n := len([]rune(pairs[i]))
		out = append(out, domain.Token{Form: pairs[i], Tag: pairs[i+1], Start: pos, Len: n})
		pos += n
	}
	return out
}

func entry(level, uid string) domain.LexicalEntry {
	return domain.LexicalEntry{Level: level, UID: uid, Description: "뜻 " + uid, IsMain: true}
}
