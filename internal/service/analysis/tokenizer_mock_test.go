package analysis

import (
	"context"
	"sync"

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
)

var _ tokenizer = &tokenizerMock{}

type tokenizerMock struct {
	TokenizeFunc func(ctx context.Context, text string) ([]domain.Token, error)

	calls struct {
		Tokenize []struct {
			Text string
		}
	}
	lockTokenize sync.RWMutex
}

func (mock *tokenizerMock) Tokenize(ctx context.Context, text string) ([]domain.Token, error) {
	if mock.TokenizeFunc == nil {
		panic("tokenizerMock.TokenizeFunc: method is nil but tokenizer.Tokenize was just called")
	}
	mock.lockTokenize.Lock()
	mock.calls.Tokenize = append(mock.calls.Tokenize, struct{ Text string }{Text: text})
	mock.lockTokenize.Unlock()
	return mock.TokenizeFunc(ctx, text)
}

func (mock *tokenizerMock) TokenizeCalls() []struct{ Text string } {
	mock.lockTokenize.RLock()
	defer mock.lockTokenize.RUnlock()
	return mock.calls.Tokenize
}

type staticStore struct{ store *lexicon.Store }

func (s staticStore) Current() *lexicon.Store { return s.store }
