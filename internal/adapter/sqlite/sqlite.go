// Package sqlite stores the reference tables in a single SQLite file so a
// deployment can ship the lexicon without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/migrations"
)

const (
	tableWords   = "lexicon_words"
	tableGrammar = "lexicon_grammar"

	// SQLite caps bound parameters per statement; 8 columns * 100 rows stays well under it.
	insertChunk = 100
)

var (
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

	wordColumns    = []string{"row_no", "surface", "pos", "level", "uid", "gloss"}
	grammarColumns = []string{"row_no", "canonical", "related", "class", "level", "uid", "gloss", "meaning"}
)

// Open opens (or creates) the database file at path and applies migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time; the lexicon is read in bulk and replaced rarely.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// LexiconRepo implements lexicon.Source on top of SQLite.
type LexiconRepo struct {
	db *sql.DB
}

// NewLexiconRepo creates a new lexicon repository.
func NewLexiconRepo(db *sql.DB) *LexiconRepo {
	return &LexiconRepo{db: db}
}

func (r *LexiconRepo) LoadWords(ctx context.Context) ([]domain.WordRecord, error) {
	query, args, err := builder.Select(wordColumns[1:]...).From(tableWords).OrderBy("row_no").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tableWords, err)
	}
	defer rows.Close()

	var out []domain.WordRecord
	for rows.Next() {
		var w domain.WordRecord
		if err := rows.Scan(&w.Surface, &w.POS, &w.Level, &w.UID, &w.Gloss); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableWords, err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *LexiconRepo) LoadGrammar(ctx context.Context) ([]domain.GrammarRecord, error) {
	query, args, err := builder.Select(grammarColumns[1:]...).From(tableGrammar).OrderBy("row_no").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", tableGrammar, err)
	}
	defer rows.Close()

	var out []domain.GrammarRecord
	for rows.Next() {
		var g domain.GrammarRecord
		if err := rows.Scan(&g.Canonical, &g.Related, &g.Class, &g.Level, &g.UID, &g.Gloss, &g.Meaning); err != nil {
			return nil, fmt.Errorf("scan %s: %w", tableGrammar, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Replace swaps both tables for the given rows in a single transaction.
func (r *LexiconRepo) Replace(ctx context.Context, words []domain.WordRecord, grammar []domain.GrammarRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	wordRows := make([][]any, len(words))
	for i, w := range words {
		wordRows[i] = []any{i, w.Surface, w.POS, w.Level, w.UID, w.Gloss}
	}
	if err = replaceTable(ctx, tx, tableWords, wordColumns, wordRows); err != nil {
		return err
	}

	grammarRows := make([][]any, len(grammar))
	for i, g := range grammar {
		grammarRows[i] = []any{i, g.Canonical, g.Related, g.Class, g.Level, g.UID, g.Gloss, g.Meaning}
	}
	if err = replaceTable(ctx, tx, tableGrammar, grammarColumns, grammarRows); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func replaceTable(ctx context.Context, tx *sql.Tx, table string, columns []string, rows [][]any) error {
	del, args, err := builder.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		ins := builder.Insert(table).Columns(columns...)
		for _, row := range rows[start:end] {
			ins = ins.Values(row...)
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

// Counts returns the number of stored word and grammar rows.
func (r *LexiconRepo) Counts(ctx context.Context) (words, grammar int, err error) {
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM "+tableWords).Scan(&words); err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", tableWords, err)
	}
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM "+tableGrammar).Scan(&grammar); err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", tableGrammar, err)
	}
	return words, grammar, nil
}
