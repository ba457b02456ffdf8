package lexicon

import (
	"context"
	"fmt"
	"sync"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

var _ Source = &sourceMock{}

type sourceMock struct {
	LoadWordsFunc   func(ctx context.Context) ([]domain.WordRecord, error)
	LoadGrammarFunc func(ctx context.Context) ([]domain.GrammarRecord, error)
}

func (m *sourceMock) LoadWords(ctx context.Context) ([]domain.WordRecord, error) {
	if m.LoadWordsFunc == nil {
		panic("sourceMock.LoadWordsFunc: method is nil but Source.LoadWords was just called")
	}
	return m.LoadWordsFunc(ctx)
}

func (m *sourceMock) LoadGrammar(ctx context.Context) ([]domain.GrammarRecord, error) {
	if m.LoadGrammarFunc == nil {
		panic("sourceMock.LoadGrammarFunc: method is nil but Source.LoadGrammar was just called")
	}
	return m.LoadGrammarFunc(ctx)
}

var _ Tokenizer = &tokenizerMock{}

// tokenizerMock answers from a fixed chunk -> tokens table and records calls.
type tokenizerMock struct {
	table map[string][]domain.Token
	err   error // returned for every call when set

	mu    sync.Mutex
	calls []string
}

func (m *tokenizerMock) Tokenize(_ context.Context, text string) ([]domain.Token, error) {
	m.mu.Lock()
	m.calls = append(m.calls, text)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	toks, ok := m.table[text]
	if !ok {
		return nil, fmt.Errorf("no tokens for %q", text)
	}
	return toks, nil
}

func (m *tokenizerMock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// toks builds a token list from alternating form/tag pairs.
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
