package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/hangyeol/internal/adapter/postgres"
	"github.com/heartmarshall/hangyeol/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/hangyeol/internal/domain"
)

func TestLexiconRepo_ReplaceAndLoad(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := postgres.NewLexiconRepo(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	words := []domain.WordRecord{
		{Surface: "사과", POS: "명사", Level: "1급", UID: "100", Gloss: "과일"},
		{Surface: "가다", POS: "동사", Level: "1급", UID: "101"},
	}
	grammar := []domain.GrammarRecord{
		{Canonical: "-는데", Related: "-은데", Class: "연결어미", Level: "2급", UID: "200", Meaning: "배경"},
		{Canonical: "이다", Class: "조사", Level: "1급", UID: "17"},
	}

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.ReplaceWords(ctx, words); err != nil {
			return err
		}
		return repo.ReplaceGrammar(ctx, grammar)
	})
	require.NoError(t, err)

	gotWords, err := repo.LoadWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, words, gotWords)

	gotGrammar, err := repo.LoadGrammar(ctx)
	require.NoError(t, err)
	assert.Equal(t, grammar, gotGrammar)

	w, g, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, g)

	// A second replace swaps the table contents.
	require.NoError(t, repo.ReplaceWords(ctx, words[:1]))
	gotWords, err = repo.LoadWords(ctx)
	require.NoError(t, err)
	assert.Equal(t, words[:1], gotWords)
}

func TestLexiconRepo_ReplaceChunks(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := postgres.NewLexiconRepo(pool)
	ctx := context.Background()

	words := make([]domain.WordRecord, 1203)
	for i := range words {
		words[i] = domain.WordRecord{Surface: "단어", POS: "명사", Level: "1급", UID: string(rune('a'+i%26)) + "x"}
	}
	require.NoError(t, repo.ReplaceWords(ctx, words))

	got, err := repo.LoadWords(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(words))
}
