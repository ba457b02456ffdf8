package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/hangyeol/internal/adapter/postgres"
	"github.com/heartmarshall/hangyeol/internal/adapter/sqlite"
	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/internal/lexicon"
	"github.com/heartmarshall/hangyeol/internal/lexicon/csvtable"
)

// OpenLexiconSource opens the configured reference table source. The
// returned close function releases its connections and is never nil.
func OpenLexiconSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (lexicon.Source, func(), error) {
	switch cfg.Lexicon.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("lexicon source: %w", err)
		}
		logger.Info("lexicon source: postgres")
		return postgres.NewLexiconRepo(pool), pool.Close, nil

	case config.SourceSQLite:
		db, err := sqlite.Open(ctx, cfg.Lexicon.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("lexicon source: %w", err)
		}
		logger.Info("lexicon source: sqlite", slog.String("path", cfg.Lexicon.SQLitePath))
		return sqlite.NewLexiconRepo(db), func() { db.Close() }, nil

	default:
		logger.Info("lexicon source: csv",
			slog.String("word_path", cfg.Lexicon.WordPath),
			slog.String("grammar_path", cfg.Lexicon.GrammarPath),
		)
		return csvtable.NewSource(cfg.Lexicon.WordPath, cfg.Lexicon.GrammarPath), func() {}, nil
	}
}
