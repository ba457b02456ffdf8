// Package lexicon builds the graded lookup tables used by the annotator from
// the word and grammar reference tables.
package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

// Source supplies the raw reference tables.
type Source interface {
	LoadWords(ctx context.Context) ([]domain.WordRecord, error)
	LoadGrammar(ctx context.Context) ([]domain.GrammarRecord, error)
}

// Tokenizer splits idiom pattern text into morphemes during ingestion.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]domain.Token, error)
}

// Key identifies a lookup bucket: a normalized form and its coarse category.
type Key struct {
	Form     string
	Category domain.Category
}

// IdiomPattern is a multi-morpheme expression keyed by its first stem.
// Sequence holds the normalized stems that must follow the key in order.
type IdiomPattern struct {
	Sequence    []string
	Entry       domain.LexicalEntry
	DisplayText string
}

// Stats summarizes the size of a built store.
type Stats struct {
	WordRows    int `json:"word_rows"`
	GrammarRows int `json:"grammar_rows"`
	WordKeys    int `json:"word_keys"`
	GrammarKeys int `json:"grammar_keys"`
	IdiomHeads  int `json:"idiom_heads"`
}

// CopulaUID is the grammar table identifier of the copula "이다".
const CopulaUID = "17"

var defaultCopula = domain.LexicalEntry{
	Level:       "1급",
	UID:         CopulaUID,
	Description: "서술격 조사",
	IsMain:      true,
	Source:      domain.SourceGrammar,
}

var (
	errNoSource  = errors.New("no lexicon source configured")
	errNotLoaded = errors.New("lexicon not loaded yet")
)

// Store is the immutable set of lookup tables. A Store that failed to load
// reports Ready() == false and answers every lookup with nothing.
// Slices returned by lookups are shared and must not be modified.
type Store struct {
	words   map[Key][]domain.LexicalEntry
	grammar map[Key][]domain.LexicalEntry
	idioms  map[string][]IdiomPattern
	copula  domain.LexicalEntry

	wordRecords    []domain.WordRecord
	grammarRecords []domain.GrammarRecord

	err error
}

// Build loads both reference tables concurrently and indexes them.
// It never returns nil; load failures are kept in Err. An unreachable
// tokenizer fails the build, since idioms could not be registered.
func Build(ctx context.Context, src Source, tok Tokenizer, logger *slog.Logger) *Store {
	log := logger.With("component", "lexicon")

	if src == nil {
		return failed(errNoSource)
	}

	var (
		words   []domain.WordRecord
		grammar []domain.GrammarRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if words, err = src.LoadWords(gctx); err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if grammar, err = src.LoadGrammar(gctx); err != nil {
			return fmt.Errorf("load grammar: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("lexicon load failed", slog.String("error", err.Error()))
		return failed(err)
	}

	b := newBuilder(tok, log)
	for _, w := range words {
		b.addWord(w)
	}
	for _, r := range grammar {
		b.addGrammar(ctx, r)
	}
	if b.tokErr != nil {
		return failed(fmt.Errorf("register idioms: %w", b.tokErr))
	}
	s := b.finish()
	s.wordRecords = words
	s.grammarRecords = grammar

	st := s.Stats()
	log.Info("lexicon built",
		slog.Int("word_rows", st.WordRows),
		slog.Int("grammar_rows", st.GrammarRows),
		slog.Int("idiom_heads", st.IdiomHeads),
		slog.Bool("copula_found", b.copulaFound),
	)
	return s
}

func failed(err error) *Store {
	return &Store{
		words:   map[Key][]domain.LexicalEntry{},
		grammar: map[Key][]domain.LexicalEntry{},
		idioms:  map[string][]IdiomPattern{},
		copula:  defaultCopula,
		err:     err,
	}
}

// Ready reports whether both tables loaded.
func (s *Store) Ready() bool { return s.err == nil }

// Err returns the load failure, if any.
func (s *Store) Err() error { return s.err }

// Words returns word-table entries under (form, category).
func (s *Store) Words(form string, cat domain.Category) []domain.LexicalEntry {
	return s.words[Key{Form: form, Category: cat}]
}

// Grammar returns grammar-table entries under (form, category).
func (s *Store) Grammar(form string, cat domain.Category) []domain.LexicalEntry {
	return s.grammar[Key{Form: form, Category: cat}]
}

// Idioms returns patterns starting with head, longest sequence first.
func (s *Store) Idioms(head string) []IdiomPattern {
	return s.idioms[head]
}

// Copula returns the cached copula entry.
func (s *Store) Copula() domain.LexicalEntry { return s.copula }

func (s *Store) Stats() Stats {
	return Stats{
		WordRows:    len(s.wordRecords),
		GrammarRows: len(s.grammarRecords),
		WordKeys:    len(s.words),
		GrammarKeys: len(s.grammar),
		IdiomHeads:  len(s.idioms),
	}
}
