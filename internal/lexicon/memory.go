package lexicon

import (
	"context"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// MemorySource serves reference rows held in memory.
type MemorySource struct {
	Words   []domain.WordRecord
	Grammar []domain.GrammarRecord
}

func (m MemorySource) LoadWords(_ context.Context) ([]domain.WordRecord, error) {
	return m.Words, nil
}

func (m MemorySource) LoadGrammar(_ context.Context) ([]domain.GrammarRecord, error) {
	return m.Grammar, nil
}
