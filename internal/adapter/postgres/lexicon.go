package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

const (
	tableWords   = "lexicon_words"
	tableGrammar = "lexicon_grammar"

	insertChunk = 500
)

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	wordColumns    = []string{"row_no", "surface", "pos", "level", "uid", "gloss"}
	grammarColumns = []string{"row_no", "canonical", "related", "class", "level", "uid", "gloss", "meaning"}
)

// LexiconRepo stores the reference tables in PostgreSQL. It implements
// lexicon.Source; rows come back in their original table order.
type LexiconRepo struct {
	pool *pgxpool.Pool
}

// NewLexiconRepo creates a new lexicon repository.
func NewLexiconRepo(pool *pgxpool.Pool) *LexiconRepo {
	return &LexiconRepo{pool: pool}
}

// LoadWords returns every word row ordered by row_no.
func (r *LexiconRepo) LoadWords(ctx context.Context) ([]domain.WordRecord, error) {
	query, args, err := psql.Select(wordColumns[1:]...).From(tableWords).OrderBy("row_no").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, tableWords)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WordRecord, error) {
		var w domain.WordRecord
		err := row.Scan(&w.Surface, &w.POS, &w.Level, &w.UID, &w.Gloss)
		return w, err
	})
	if err != nil {
		return nil, mapError(err, tableWords)
	}
	return out, nil
}

// LoadGrammar returns every grammar row ordered by row_no.
func (r *LexiconRepo) LoadGrammar(ctx context.Context) ([]domain.GrammarRecord, error) {
	query, args, err := psql.Select(grammarColumns[1:]...).From(tableGrammar).OrderBy("row_no").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, tableGrammar)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GrammarRecord, error) {
		var g domain.GrammarRecord
		err := row.Scan(&g.Canonical, &g.Related, &g.Class, &g.Level, &g.UID, &g.Gloss, &g.Meaning)
		return g, err
	})
	if err != nil {
		return nil, mapError(err, tableGrammar)
	}
	return out, nil
}

// ReplaceWords deletes all word rows and inserts words in order. Run it
// inside TxManager.RunInTx to make the swap atomic.
func (r *LexiconRepo) ReplaceWords(ctx context.Context, words []domain.WordRecord) error {
	rows := make([][]any, len(words))
	for i, w := range words {
		rows[i] = []any{i, w.Surface, w.POS, w.Level, w.UID, w.Gloss}
	}
	return r.replace(ctx, tableWords, wordColumns, rows)
}

// ReplaceGrammar deletes all grammar rows and inserts records in order.
func (r *LexiconRepo) ReplaceGrammar(ctx context.Context, records []domain.GrammarRecord) error {
	rows := make([][]any, len(records))
	for i, g := range records {
		rows[i] = []any{i, g.Canonical, g.Related, g.Class, g.Level, g.UID, g.Gloss, g.Meaning}
	}
	return r.replace(ctx, tableGrammar, grammarColumns, rows)
}

func (r *LexiconRepo) replace(ctx context.Context, table string, columns []string, rows [][]any) error {
	q := QuerierFromCtx(ctx, r.pool)

	del, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := q.Exec(ctx, del, args...); err != nil {
		return mapError(err, table)
	}

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		ins := psql.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			ins = ins.Values(row...)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return mapError(err, table)
		}
	}
	return nil
}

// Counts returns the number of stored word and grammar rows.
func (r *LexiconRepo) Counts(ctx context.Context) (words, grammar int, err error) {
	q := QuerierFromCtx(ctx, r.pool)
	for _, c := range []struct {
		table string
		dst   *int
	}{{tableWords, &words}, {tableGrammar, &grammar}} {
		query, args, err := psql.Select("count(*)").From(c.table).ToSql()
		if err != nil {
			return 0, 0, fmt.Errorf("build count: %w", err)
		}
		if err := q.QueryRow(ctx, query, args...).Scan(c.dst); err != nil {
			return 0, 0, mapError(err, c.table)
		}
	}
	return words, grammar, nil
}
