// Command lexicon-import loads the word and grammar CSV tables into a
// database lexicon source. It applies pending migrations and replaces all
// rows in a single transaction, so a running server sees either the old or
// the new tables after its next reload.
//
// Flags:
//
//	-target   postgres or sqlite (default sqlite)
//	-words    word table CSV (default lexicon.word_path)
//	-grammar  grammar table CSV (default lexicon.grammar_path)
//	-sqlite   SQLite file (default lexicon.sqlite_path)
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hangyeol/internal/adapter/postgres"
	"github.com/heartmarshall/hangyeol/internal/adapter/sqlite"
	"github.com/heartmarshall/hangyeol/internal/app"
	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/internal/domain"
	"github.com/heartmarshall/hangyeol/internal/lexicon/csvtable"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	target := flag.String("target", config.SourceSQLite, "postgres or sqlite")
	words := flag.String("words", cfg.Lexicon.WordPath, "word table CSV")
	grammar := flag.String("grammar", cfg.Lexicon.GrammarPath, "grammar table CSV")
	sqlitePath := flag.String("sqlite", cfg.Lexicon.SQLitePath, "SQLite lexicon file")
	flag.Parse()

	if *target != config.SourcePostgres && *target != config.SourceSQLite {
		fmt.Fprintln(os.Stderr, "usage: lexicon-import -target postgres|sqlite [-words f] [-grammar f] [-sqlite f]")
		os.Exit(2)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	src := csvtable.NewSource(*words, *grammar)
	var (
		wordRows    []domain.WordRecord
		grammarRows []domain.GrammarRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		wordRows, err = src.LoadWords(gctx)
		return err
	})
	g.Go(func() (err error) {
		grammarRows, err = src.LoadGrammar(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("read tables", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var nWords, nGrammar int
	switch *target {
	case config.SourcePostgres:
		nWords, nGrammar, err = importPostgres(ctx, cfg.Database, wordRows, grammarRows)
	case config.SourceSQLite:
		nWords, nGrammar, err = importSQLite(ctx, *sqlitePath, wordRows, grammarRows)
	}
	if err != nil {
		logger.Error("import failed", slog.String("target", *target), slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("target", *target),
		slog.Int("word_rows", nWords),
		slog.Int("grammar_rows", nGrammar),
	)
}

func importPostgres(ctx context.Context, dbCfg config.DatabaseConfig, words []domain.WordRecord, grammar []domain.GrammarRecord) (int, int, error) {
	if dbCfg.DSN == "" {
		return 0, 0, fmt.Errorf("database.dsn is required for the postgres target")
	}
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return 0, 0, err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return 0, 0, err
	}

	repo := postgres.NewLexiconRepo(pool)
	err = postgres.NewTxManager(pool).RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.ReplaceWords(ctx, words); err != nil {
			return fmt.Errorf("replace words: %w", err)
		}
		if err := repo.ReplaceGrammar(ctx, grammar); err != nil {
			return fmt.Errorf("replace grammar: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return repo.Counts(ctx)
}

func importSQLite(ctx context.Context, path string, words []domain.WordRecord, grammar []domain.GrammarRecord) (int, int, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return 0, 0, err
	}
	defer db.Close()

	repo := sqlite.NewLexiconRepo(db)
	if err := repo.Replace(ctx, words, grammar); err != nil {
		return 0, 0, err
	}
	return repo.Counts(ctx)
}
