package config

import (
	"fmt"
	"slices"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Lexicon.validate(); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}
	if c.Lexicon.Source == SourcePostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres lexicon source")
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if c.Generation.MaxAttempts < 1 || c.Generation.MaxAttempts > 20 {
		return fmt.Errorf("generation.max_attempts must be in [1, 20] (got %d)", c.Generation.MaxAttempts)
	}
	if c.Admin.Enabled() && len(c.Admin.JWTSecret) < 32 {
		return fmt.Errorf("admin.jwt_secret must be at least 32 characters (got %d)", len(c.Admin.JWTSecret))
	}
	if c.Tokenizer.RetryMax < 0 {
		return fmt.Errorf("tokenizer.retry_max must be >= 0 (got %d)", c.Tokenizer.RetryMax)
	}
	if c.RateLimit.GradePerMinute <= 0 || c.RateLimit.GeneratePerMinute <= 0 {
		return fmt.Errorf("rate_limit values must be > 0")
	}
	return nil
}

func (l LexiconConfig) validate() error {
	switch l.Source {
	case SourceCSV:
		if l.WordPath == "" || l.GrammarPath == "" {
			return fmt.Errorf("word_path and grammar_path are required for the csv source")
		}
	case SourceSQLite:
		if l.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite source")
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("unknown source %q", l.Source)
	}
	return nil
}

func (l LLMConfig) validate() error {
	if !slices.Contains([]string{ProviderAnthropic, ProviderNone}, l.Provider) {
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if !l.Enabled() {
		return nil
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %q", l.Provider)
	}
	if l.Model == "" {
		return fmt.Errorf("model is required")
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	return nil
}
